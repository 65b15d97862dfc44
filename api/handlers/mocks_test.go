package handlers

import (
	"context"
	"tierboard/api/dto"
	"tierboard/api/filters"

	"github.com/stretchr/testify/mock"
)

type mockLeaderboardService struct {
	mock.Mock
}

func (m *mockLeaderboardService) ListLeaderboards(ctx context.Context) ([]*dto.LeaderboardSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dto.LeaderboardSummary), args.Error(1)
}

func (m *mockLeaderboardService) GetLeaderboard(ctx context.Context, id string) (*dto.Leaderboard, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Leaderboard), args.Error(1)
}

func (m *mockLeaderboardService) CreateLeaderboard(ctx context.Context, filter *filters.CreateLeaderboardFilter) (*dto.Leaderboard, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Leaderboard), args.Error(1)
}

func (m *mockLeaderboardService) UpdateLeaderboard(ctx context.Context, filter *filters.UpdateLeaderboardFilter) (*dto.Leaderboard, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Leaderboard), args.Error(1)
}

func (m *mockLeaderboardService) DeleteLeaderboard(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockMemberService struct {
	mock.Mock
}

func (m *mockMemberService) ListMembers(ctx context.Context, leaderboardID string) ([]*dto.Member, error) {
	args := m.Called(ctx, leaderboardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dto.Member), args.Error(1)
}

func (m *mockMemberService) AddMember(ctx context.Context, filter *filters.CreateMemberFilter) (*dto.Member, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Member), args.Error(1)
}

func (m *mockMemberService) UpdateMember(ctx context.Context, filter *filters.UpdateMemberFilter) (*dto.Member, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Member), args.Error(1)
}

func (m *mockMemberService) BatchReorder(ctx context.Context, updates []*filters.UpdateMemberFilter) ([]*dto.Member, error) {
	args := m.Called(ctx, updates)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*dto.Member), args.Error(1)
}

func (m *mockMemberService) DeleteMember(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
