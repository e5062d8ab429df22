package rpc

import (
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"

	"github.com/SamMauldin/super-sorting-system/pkg/config"
	"github.com/SamMauldin/super-sorting-system/pkg/state"
)

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// NewServer builds the grpc.Server exposing the admin-scope read
// surface (GetStats, ListOperations, StreamAlerts) over the
// operator.AdminService hand-rolled service descriptor, gated by the
// same admin key set pkg/api enforces for /admin/*.
func NewServer(cfg *config.Config, st *state.State) *grpc.Server {
	srv := grpc.NewServer(
		grpc.ForceServerCodec(jsonCodec{}),
		grpc.UnaryInterceptor(requireAdminKeyUnary(cfg)),
		grpc.StreamInterceptor(requireAdminKeyStream(cfg)),
	)
	srv.RegisterService(&ServiceDesc, &adminServer{state: st})
	return srv
}

// Serve blocks accepting connections on ln until the server stops.
func Serve(srv *grpc.Server, ln net.Listener) error {
	return srv.Serve(ln)
}
