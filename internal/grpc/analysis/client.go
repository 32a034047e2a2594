package analysis

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client is a typed client for the analysis service.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) SuggestMove(ctx context.Context, req SuggestMoveRequest, opts ...grpc.CallOption) (SuggestMoveResponse, error) {
	var resp SuggestMoveResponse
	err := c.invoke(ctx, SuggestMoveFullMethodName, req, &resp, opts...)
	return resp, err
}

func (c *Client) LegalActions(ctx context.Context, req LegalActionsRequest, opts ...grpc.CallOption) (LegalActionsResponse, error) {
	var resp LegalActionsResponse
	err := c.invoke(ctx, LegalActionsFullMethodName, req, &resp, opts...)
	return resp, err
}

func (c *Client) invoke(ctx context.Context, method string, req, resp interface{}, opts ...grpc.CallOption) error {
	in, err := toStruct(req)
	if err != nil {
		return err
	}
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return err
	}
	return fromStruct(out, resp)
}
