package grpc

import (
	"context"

	"google.golang.org/grpc"

	"quadsolver/internal/models"
)

const (
	serviceName            = "quadsolver.Solver"
	getTaskMethod          = "/" + serviceName + "/GetTask"
	submitTaskResultMethod = "/" + serviceName + "/SubmitTaskResult"
)

// SolverServer это серверная часть сервиса, через который агенты
// получают уравнения и возвращают корни
type SolverServer interface {
	GetTask(context.Context, *models.TaskRequest) (*models.Task, error)
	SubmitTaskResult(context.Context, *models.TaskResult) (*models.TaskResultResponse, error)
}

var SolverServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*SolverServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetTask", Handler: getTaskHandler},
		{MethodName: "SubmitTaskResult", Handler: submitTaskResultHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "quadsolver/solver",
}

func RegisterSolverServer(s grpc.ServiceRegistrar, srv SolverServer) {
	s.RegisterService(&SolverServiceDesc, srv)
}

func getTaskHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(models.TaskRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SolverServer).GetTask(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getTaskMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SolverServer).GetTask(ctx, req.(*models.TaskRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func submitTaskResultHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(models.TaskResult)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(SolverServer).SubmitTaskResult(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: submitTaskResultMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(SolverServer).SubmitTaskResult(ctx, req.(*models.TaskResult))
	}
	return interceptor(ctx, in, info, handler)
}
