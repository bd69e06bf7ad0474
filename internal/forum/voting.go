package forum

import (
	"context"
	"fmt"

	"github.com/sajidhasan/forumhub/backend/internal/models"
)

// Direction of a vote.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// Valid reports whether d is a known vote direction.
func (d Direction) Valid() bool {
	return d == Up || d == Down
}

// toggleVote applies one vote to a pair of vote sets and returns the new
// sets. Voting the same direction twice removes the vote; voting the
// opposite direction moves it. The sets stay disjoint per user.
func toggleVote(upvotes, downvotes []uint, userID uint, dir Direction) ([]uint, []uint) {
	target, other := upvotes, downvotes
	if dir == Down {
		target, other = downvotes, upvotes
	}

	other = removeVote(other, userID)
	if hasVote(target, userID) {
		target = removeVote(target, userID)
	} else {
		target = append(target, userID)
	}

	if dir == Down {
		return other, target
	}
	return target, other
}

func hasVote(set []uint, userID uint) bool {
	for _, id := range set {
		if id == userID {
			return true
		}
	}
	return false
}

func removeVote(set []uint, userID uint) []uint {
	out := make([]uint, 0, len(set))
	for _, id := range set {
		if id != userID {
			out = append(out, id)
		}
	}
	return out
}

// VotePost toggles the caller's vote on a post and returns the updated post.
func (s *Service) VotePost(ctx context.Context, caller Caller, postID string, dir Direction) (*models.Post, error) {
	if !dir.Valid() {
		return nil, fmt.Errorf("%w: unknown vote direction %q", ErrValidation, dir)
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	up, down := toggleVote(post.Upvotes, post.Downvotes, caller.ID, dir)
	return s.posts.SetVotes(ctx, postID, up, down)
}

// VoteComment toggles the caller's vote on a comment and returns the updated
// comment.
func (s *Service) VoteComment(ctx context.Context, caller Caller, commentID string, dir Direction) (*models.Comment, error) {
	if !dir.Valid() {
		return nil, fmt.Errorf("%w: unknown vote direction %q", ErrValidation, dir)
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}

	up, down := toggleVote(comment.Upvotes, comment.Downvotes, caller.ID, dir)
	return s.comments.SetVotes(ctx, commentID, up, down)
}
