package service

import (
	"context"

	"weave/internal/cache"
	"weave/internal/models"
)

// NetworkSummary holds the counts shown on the network home view.
type NetworkSummary struct {
	ConnectionsCount     int64 `json:"connections_count"`
	FollowersCount       int64 `json:"followers_count"`
	FollowingCount       int64 `json:"following_count"`
	IncomingInvitesCount int64 `json:"incoming_invites_count"`
	OutgoingInvitesCount int64 `json:"outgoing_invites_count"`
}

// UserSearchResult is a search hit annotated with the searcher's relation to it.
type UserSearchResult struct {
	User               models.User        `json:"user"`
	IsConnected        bool               `json:"is_connected"`
	OutgoingPending    bool               `json:"outgoing_pending"`
	IncomingInvitation *models.Invitation `json:"incoming_invitation,omitempty"`
	IsFollowing        bool               `json:"is_following"`
	IsFollower         bool               `json:"is_follower"`
}

// FollowerEntry is a follower annotated with whether the user follows back.
type FollowerEntry struct {
	Follow         models.Follow `json:"follow"`
	IsFollowedBack bool          `json:"is_followed_back"`
}

// FollowLists holds both follow directions for a user.
type FollowLists struct {
	Followers []FollowerEntry `json:"followers"`
	Following []models.Follow `json:"following"`
}

// InvitationLists holds a user's pending invitations in both directions.
type InvitationLists struct {
	Incoming []models.Invitation `json:"incoming"`
	Outgoing []models.Invitation `json:"outgoing"`
}

// Summary returns the user's network counts. Results are briefly cached;
// mutations invalidate the cache for both affected users.
func (s *NetworkService) Summary(ctx context.Context, userID uint) (*NetworkSummary, error) {
	var summary NetworkSummary
	key := cache.NetworkSummaryKey(userID)

	err := cache.Aside(ctx, key, &summary, cache.NetworkSummaryTTL, func() error {
		var err error
		if summary.ConnectionsCount, err = s.connectionRepo.CountByUser(ctx, userID); err != nil {
			return err
		}
		if summary.FollowersCount, err = s.followRepo.CountFollowers(ctx, userID); err != nil {
			return err
		}
		if summary.FollowingCount, err = s.followRepo.CountFollowing(ctx, userID); err != nil {
			return err
		}
		if summary.IncomingInvitesCount, err = s.invitationRepo.CountIncomingPending(ctx, userID); err != nil {
			return err
		}
		if summary.OutgoingInvitesCount, err = s.invitationRepo.CountOutgoingPending(ctx, userID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// SearchUsers finds users matching the query and annotates each hit with the
// searcher's relation flags. Annotation lookups are batched: one query per
// relation type across the whole result set, never per row.
func (s *NetworkService) SearchUsers(ctx context.Context, userID uint, query string) ([]UserSearchResult, error) {
	users, err := s.userRepo.Search(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	results := make([]UserSearchResult, 0, len(users))
	if len(users) == 0 {
		return results, nil
	}

	ids := make([]uint, len(users))
	for i, user := range users {
		ids[i] = user.ID
	}

	connectedIDs, err := s.connectionRepo.ConnectedIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	outgoingIDs, err := s.invitationRepo.PendingToIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	incomingByFromID, err := s.invitationRepo.PendingFrom(ctx, ids, userID)
	if err != nil {
		return nil, err
	}
	followingIDs, err := s.followRepo.FollowingIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	followerIDs, err := s.followRepo.FollowerIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	connected := toSet(connectedIDs)
	outgoing := toSet(outgoingIDs)
	following := toSet(followingIDs)
	followers := toSet(followerIDs)

	for _, user := range users {
		result := UserSearchResult{
			User:            user,
			IsConnected:     connected[user.ID],
			OutgoingPending: outgoing[user.ID],
			IsFollowing:     following[user.ID],
			IsFollower:      followers[user.ID],
		}
		if invitation, ok := incomingByFromID[user.ID]; ok {
			inv := invitation
			result.IncomingInvitation = &inv
		}
		results = append(results, result)
	}
	return results, nil
}

// Connections returns the user's connections ordered by the other party's username.
func (s *NetworkService) Connections(ctx context.Context, userID uint) ([]models.Connection, error) {
	return s.connectionRepo.ListByUser(ctx, userID)
}

// Follows returns both follow directions for the user, follower entries
// annotated with the followed-back flag.
func (s *NetworkService) Follows(ctx context.Context, userID uint) (*FollowLists, error) {
	followerRows, err := s.followRepo.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}

	followingSet := make(map[uint]bool, len(following))
	for _, follow := range following {
		followingSet[follow.FollowingID] = true
	}

	followers := make([]FollowerEntry, 0, len(followerRows))
	for _, follow := range followerRows {
		followers = append(followers, FollowerEntry{
			Follow:         follow,
			IsFollowedBack: followingSet[follow.FollowerID],
		})
	}

	return &FollowLists{Followers: followers, Following: following}, nil
}

// Invitations returns the user's pending invitations in both directions,
// newest first.
func (s *NetworkService) Invitations(ctx context.Context, userID uint) (*InvitationLists, error) {
	incoming, err := s.invitationRepo.ListIncomingPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	outgoing, err := s.invitationRepo.ListOutgoingPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &InvitationLists{Incoming: incoming, Outgoing: outgoing}, nil
}

// Mutuals returns the users connected to both userID and targetID, excluding
// userID itself, ordered by username. A zero or self target yields an empty
// result.
func (s *NetworkService) Mutuals(ctx context.Context, userID, targetID uint) ([]models.User, error) {
	if targetID == 0 || targetID == userID {
		return []models.User{}, nil
	}

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	myPartners, err := s.connectionRepo.PartnerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	targetPartners, err := s.connectionRepo.PartnerIDs(ctx, targetID)
	if err != nil {
		return nil, err
	}

	mine := toSet(myPartners)
	mutualIDs := []uint{}
	for _, id := range targetPartners {
		if id != userID && mine[id] {
			mutualIDs = append(mutualIDs, id)
		}
	}

	return s.userRepo.GetByIDs(ctx, mutualIDs)
}

func toSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
