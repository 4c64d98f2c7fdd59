package server

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/joseph-ayodele/heat-tracker/internal/common"
	"github.com/joseph-ayodele/heat-tracker/internal/entity"
	"github.com/joseph-ayodele/heat-tracker/internal/utils"
)

// Client is a thin typed wrapper around the HeatSheetService methods.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) invoke(ctx context.Context, method string, req map[string]any, out any) error {
	in, err := structpb.NewStruct(req)
	if err != nil {
		return err
	}
	if rid := common.RequestIDFromContext(ctx); rid != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, RequestIDHeader, rid)
	}
	resp := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, fullMethod(method), in, resp); err != nil {
		return err
	}
	return utils.FromStruct(resp, out)
}

// ParseText parses and stores text on the server. An empty strategy uses the server default.
func (c *Client) ParseText(ctx context.Context, name, text, strategy string) (*SheetView, error) {
	var out SheetView
	err := c.invoke(ctx, MethodParseText, map[string]any{"name": name, "text": text, "strategy": strategy}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetSheet(ctx context.Context, id string) (*SheetView, error) {
	var out SheetView
	if err := c.invoke(ctx, MethodGetSheet, map[string]any{"id": id}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListSheets(ctx context.Context, limit int) ([]*entity.Sheet, error) {
	var out SheetList
	if err := c.invoke(ctx, MethodListSheets, map[string]any{"limit": limit}, &out); err != nil {
		return nil, err
	}
	return out.Sheets, nil
}

func (c *Client) ExportSheet(ctx context.Context, id string) ([]byte, error) {
	in, err := structpb.NewStruct(map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if rid := common.RequestIDFromContext(ctx); rid != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, RequestIDHeader, rid)
	}
	resp := new(wrapperspb.BytesValue)
	if err := c.cc.Invoke(ctx, fullMethod(MethodExportSheet), in, resp); err != nil {
		return nil, err
	}
	return resp.GetValue(), nil
}

func (c *Client) IngestFile(ctx context.Context, path string) (*IngestReply, error) {
	var out IngestReply
	if err := c.invoke(ctx, MethodIngestFile, map[string]any{"path": path}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) IngestDirectory(ctx context.Context, root string, skipHidden bool) (*IngestReply, error) {
	var out IngestReply
	if err := c.invoke(ctx, MethodIngestDirectory, map[string]any{"root": root, "skip_hidden": skipHidden}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
