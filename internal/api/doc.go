// Package api is the wire contract shared by the gRPC server and client:
// method names, message types and the codec they travel in.
//
// There is no .proto file. Messages are plain Go structs with json tags and
// are marshalled by a JSON codec registered with grpc/encoding under
// CodecName, standing in for generated protobuf types. Both sides select
// it per call with grpc.CallContentSubtype(CodecName); the service
// descriptor is written by hand in internal/server/grpc.
package api
