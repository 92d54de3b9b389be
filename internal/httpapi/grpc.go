package httpapi

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"pitchbase.org/internal/obs"
)

// GRPCServer exposes the standard gRPC health service on a second listener,
// reporting the same readiness as /readyz.
type GRPCServer struct {
	srv    *grpc.Server
	health *health.Server
	ready  ReadyProbe
}

func NewGRPCServer(rp ReadyProbe) *GRPCServer {
	g := &GRPCServer{
		srv:    grpc.NewServer(),
		health: health.NewServer(),
		ready:  rp,
	}
	healthpb.RegisterHealthServer(g.srv, g.health)
	return g
}

// Serve blocks serving the listener. The ctx bounds the background readiness
// refresh.
func (g *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	go g.refresh(ctx)
	return g.srv.Serve(lis)
}

func (g *GRPCServer) GracefulStop() {
	g.srv.GracefulStop()
}

func (g *GRPCServer) refresh(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	g.check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.check(ctx)
		}
	}
}

func (g *GRPCServer) check(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := g.ready.Check(probeCtx); err != nil {
		obs.SetReady(false)
		g.health.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	obs.SetReady(true)
	g.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
}
