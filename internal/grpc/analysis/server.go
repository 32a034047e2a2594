// Package analysis exposes move suggestion and legal action listing over gRPC. The service
// is stateless: every request carries the position to analyse, so the server hosts no games.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mitchelldurbincs/AIWargame/internal/game"
	"github.com/mitchelldurbincs/AIWargame/internal/game/core"
	"github.com/mitchelldurbincs/AIWargame/internal/heuristic"
	"github.com/mitchelldurbincs/AIWargame/internal/search"
	"github.com/mitchelldurbincs/AIWargame/internal/trace"
)

// MaxDepthLimit caps the search depth a client may request.
const MaxDepthLimit = 10

// Server implements AnalysisServiceServer.
type Server struct {
	defaults search.Config
	logger   zerolog.Logger
}

// NewServer creates a server whose searches start from defaults.
func NewServer(defaults search.Config, logger zerolog.Logger) *Server {
	return &Server{
		defaults: defaults,
		logger:   logger.With().Str("component", "AnalysisServer").Logger(),
	}
}

// SuggestMove runs a search on the requested position.
func (s *Server) SuggestMove(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req SuggestMoveRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	gs, err := restore(req.Snapshot, req.Tables)
	if err != nil {
		return nil, err
	}
	cfg, err := s.searchConfig(req.Search)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	searcher, err := search.NewSearcher(cfg, search.WithLogger(s.logger))
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	res, err := searcher.SuggestMove(ctx, gs)
	if err != nil {
		return nil, toStatus(err)
	}
	// A cancelled call still produces a result; the client is gone, so drop it.
	if err := ctx.Err(); errors.Is(err, context.Canceled) {
		return nil, status.FromContextError(err).Err()
	}

	d := searcher.Describe()
	s.logger.Debug().
		Str("player", gs.CurrentPlayer.String()).
		Str("action", res.Action.String()).
		Int("score", res.Score).
		Int64("evaluations", res.Stats.Evaluations).
		Msg("Suggested move")

	return toStruct(SuggestMoveResponse{
		Action:    res.Action,
		Score:     res.Score,
		Algorithm: d.Algorithm,
		Heuristic: d.Heuristic,
		MaxDepth:  d.MaxDepth,
		Stats:     res.Stats,
	})
}

// LegalActions lists the side to move's actions in generation order.
func (s *Server) LegalActions(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req LegalActionsRequest
	if err := fromStruct(in, &req); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	gs, err := restore(req.Snapshot, req.Tables)
	if err != nil {
		return nil, err
	}

	outcome := gs.Outcome()
	resp := LegalActionsResponse{
		Player:  gs.CurrentPlayer.String(),
		Actions: []core.Action{},
		Outcome: outcome.String(),
	}
	if !outcome.IsOver() {
		resp.Actions = append(resp.Actions, gs.LegalActions()...)
	}
	return toStruct(resp)
}

func (s *Server) searchConfig(in SearchSettings) (search.Config, error) {
	cfg := s.defaults
	if in.Mode != "" {
		cfg.Mode = search.Mode(in.Mode)
	}
	if in.MaxDepth != 0 {
		cfg.MaxDepth = in.MaxDepth
	}
	if in.MaxTimeMs != 0 {
		cfg.MaxTime = time.Duration(in.MaxTimeMs) * time.Millisecond
	}
	if in.Heuristic != "" {
		cfg.Heuristic = heuristic.Kind(in.Heuristic)
	}
	if cfg.MaxDepth > MaxDepthLimit {
		return cfg, core.NewConfigError("search.max_depth", fmt.Sprintf("must be at most %d, got %d", MaxDepthLimit, cfg.MaxDepth))
	}
	return cfg, cfg.Validate()
}

func restore(snap trace.Snapshot, tables *core.UnitTables) (*game.GameState, error) {
	if tables != nil {
		if err := tables.Validate(); err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
	}
	if snap.MaxTurns == 0 {
		snap.MaxTurns = game.DefaultMaxTurns
	}
	gs, err := snap.Restore(tables)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return gs, nil
}

func toStatus(err error) error {
	switch {
	case errors.Is(err, core.ErrGameOver), errors.Is(err, core.ErrNoLegalActions):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, core.ErrInvalidConfig):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return status.FromContextError(err).Err()
	}
	return status.Error(codes.Internal, err.Error())
}

// NewGRPCServer builds a gRPC server with the analysis service, the health service and,
// optionally, reflection registered. Health starts out SERVING.
func NewGRPCServer(srv AnalysisServiceServer, logger zerolog.Logger, enableReflection bool) (*grpc.Server, *health.Server) {
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			LoggingInterceptor(logger),
			RecoveryInterceptor(logger),
		),
	)
	RegisterAnalysisServiceServer(grpcServer, srv)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_SERVING)

	if enableReflection {
		reflection.Register(grpcServer)
	}
	return grpcServer, healthServer
}

var _ AnalysisServiceServer = (*Server)(nil)
