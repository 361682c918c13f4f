// Package v1alpha1 exposes the raid and forge orchestrators over gRPC.
//
// Messages are google.protobuf.Struct values with snake_case keys, so the
// services are described by hand rather than generated from a .proto file.
package v1alpha1

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Fully qualified service names
const (
	RaidServiceName  = "rpg.raid.v1alpha1.RaidService"
	ForgeServiceName = "rpg.raid.v1alpha1.ForgeService"
)

// RaidServiceServer is the server API for the raid service
type RaidServiceServer interface {
	StartRaid(context.Context, *structpb.Struct) (*structpb.Struct, error)
	StartBattle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Attack(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UseCharge(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UseElixir(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CastMagic(context.Context, *structpb.Struct) (*structpb.Struct, error)
	EndRound(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Retreat(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ContinueToLobby(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ClaimReward(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Advance(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetRaid(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ForgeServiceServer is the server API for the forge service
type ForgeServiceServer interface {
	StartForging(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CompleteForging(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SpeedUpForging(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CancelForging(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CheckExpired(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListSlots(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// RaidServiceDesc describes the raid service for grpc.Server.RegisterService
var RaidServiceDesc = grpc.ServiceDesc{
	ServiceName: RaidServiceName,
	HandlerType: (*RaidServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(RaidServiceName, "StartRaid", RaidServiceServer.StartRaid),
		unary(RaidServiceName, "StartBattle", RaidServiceServer.StartBattle),
		unary(RaidServiceName, "Attack", RaidServiceServer.Attack),
		unary(RaidServiceName, "UseCharge", RaidServiceServer.UseCharge),
		unary(RaidServiceName, "UseElixir", RaidServiceServer.UseElixir),
		unary(RaidServiceName, "CastMagic", RaidServiceServer.CastMagic),
		unary(RaidServiceName, "EndRound", RaidServiceServer.EndRound),
		unary(RaidServiceName, "Retreat", RaidServiceServer.Retreat),
		unary(RaidServiceName, "ContinueToLobby", RaidServiceServer.ContinueToLobby),
		unary(RaidServiceName, "ClaimReward", RaidServiceServer.ClaimReward),
		unary(RaidServiceName, "Advance", RaidServiceServer.Advance),
		unary(RaidServiceName, "GetRaid", RaidServiceServer.GetRaid),
	},
	Streams: []grpc.StreamDesc{},
}

// ForgeServiceDesc describes the forge service for grpc.Server.RegisterService
var ForgeServiceDesc = grpc.ServiceDesc{
	ServiceName: ForgeServiceName,
	HandlerType: (*ForgeServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(ForgeServiceName, "StartForging", ForgeServiceServer.StartForging),
		unary(ForgeServiceName, "CompleteForging", ForgeServiceServer.CompleteForging),
		unary(ForgeServiceName, "SpeedUpForging", ForgeServiceServer.SpeedUpForging),
		unary(ForgeServiceName, "CancelForging", ForgeServiceServer.CancelForging),
		unary(ForgeServiceName, "CheckExpired", ForgeServiceServer.CheckExpired),
		unary(ForgeServiceName, "ListSlots", ForgeServiceServer.ListSlots),
	},
	Streams: []grpc.StreamDesc{},
}

// RegisterRaidServiceServer registers the raid service on s
func RegisterRaidServiceServer(s grpc.ServiceRegistrar, srv RaidServiceServer) {
	s.RegisterService(&RaidServiceDesc, srv)
}

// RegisterForgeServiceServer registers the forge service on s
func RegisterForgeServiceServer(s grpc.ServiceRegistrar, srv ForgeServiceServer) {
	s.RegisterService(&ForgeServiceDesc, srv)
}

func unary[S any](service, method string, call func(S, context.Context, *structpb.Struct) (*structpb.Struct, error)) grpc.MethodDesc {
	fullMethod := "/" + service + "/" + method
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*structpb.Struct))
			})
		},
	}
}

// Client calls either service over a connection
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient creates a client on conn
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Call invokes service/method with the given request fields and returns the
// response fields
func (c *Client) Call(ctx context.Context, service, method string, fields map[string]any, opts ...grpc.CallOption) (map[string]any, error) {
	in, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, "/"+service+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out.AsMap(), nil
}
