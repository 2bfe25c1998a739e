package service

import (
	"context"

	"mex/internal/models"
)

// Hand-written repository stubs. Each field overrides one method; the noop
// constructors fill in do-nothing defaults.

type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	updateFn     func(context.Context, *models.User) error
	searchFn     func(context.Context, string, uint, int) ([]models.User, error)
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Search(ctx context.Context, query string, excludeID uint, limit int) ([]models.User, error) {
	return s.searchFn(ctx, query, excludeID, limit)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn: func(context.Context, string) (*models.User, error) { return nil, nil },
		createFn:     func(context.Context, *models.User) error { return nil },
		updateFn:     func(context.Context, *models.User) error { return nil },
		searchFn:     func(context.Context, string, uint, int) ([]models.User, error) { return nil, nil },
	}
}

type friendRepoStub struct {
	createRequestFn            func(context.Context, *models.FriendRequest) error
	getRequestByIDFn           func(context.Context, uint) (*models.FriendRequest, error)
	getPendingRequestBetweenFn func(context.Context, uint, uint) (*models.FriendRequest, error)
	getIncomingRequestsFn      func(context.Context, uint) ([]models.FriendRequest, error)
	deleteRequestFn            func(context.Context, uint) error
	acceptRequestFn            func(context.Context, *models.FriendRequest) error
	areFriendsFn               func(context.Context, uint, uint) (bool, error)
	getFriendsFn               func(context.Context, uint) ([]models.User, error)
	getMutualFriendsFn         func(context.Context, uint, uint) ([]models.User, error)
	removeFriendshipFn         func(context.Context, uint, uint) error
	countFriendsFn             func(context.Context, uint) (int64, error)
}

func (s *friendRepoStub) CreateRequest(ctx context.Context, request *models.FriendRequest) error {
	return s.createRequestFn(ctx, request)
}
func (s *friendRepoStub) GetRequestByID(ctx context.Context, id uint) (*models.FriendRequest, error) {
	return s.getRequestByIDFn(ctx, id)
}
func (s *friendRepoStub) GetPendingRequestBetween(ctx context.Context, userID1, userID2 uint) (*models.FriendRequest, error) {
	return s.getPendingRequestBetweenFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) GetIncomingRequests(ctx context.Context, userID uint) ([]models.FriendRequest, error) {
	return s.getIncomingRequestsFn(ctx, userID)
}
func (s *friendRepoStub) DeleteRequest(ctx context.Context, id uint) error {
	return s.deleteRequestFn(ctx, id)
}
func (s *friendRepoStub) AcceptRequest(ctx context.Context, request *models.FriendRequest) error {
	return s.acceptRequestFn(ctx, request)
}
func (s *friendRepoStub) AreFriends(ctx context.Context, userID1, userID2 uint) (bool, error) {
	return s.areFriendsFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.getFriendsFn(ctx, userID)
}
func (s *friendRepoStub) GetMutualFriends(ctx context.Context, userID1, userID2 uint) ([]models.User, error) {
	return s.getMutualFriendsFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) RemoveFriendship(ctx context.Context, userID1, userID2 uint) error {
	return s.removeFriendshipFn(ctx, userID1, userID2)
}
func (s *friendRepoStub) CountFriends(ctx context.Context, userID uint) (int64, error) {
	return s.countFriendsFn(ctx, userID)
}

func noopFriendRepo() *friendRepoStub {
	return &friendRepoStub{
		createRequestFn: func(context.Context, *models.FriendRequest) error { return nil },
		getRequestByIDFn: func(_ context.Context, id uint) (*models.FriendRequest, error) {
			return &models.FriendRequest{ID: id}, nil
		},
		getPendingRequestBetweenFn: func(context.Context, uint, uint) (*models.FriendRequest, error) { return nil, nil },
		getIncomingRequestsFn:      func(context.Context, uint) ([]models.FriendRequest, error) { return nil, nil },
		deleteRequestFn:            func(context.Context, uint) error { return nil },
		acceptRequestFn:            func(context.Context, *models.FriendRequest) error { return nil },
		areFriendsFn:               func(context.Context, uint, uint) (bool, error) { return false, nil },
		getFriendsFn:               func(context.Context, uint) ([]models.User, error) { return nil, nil },
		getMutualFriendsFn:         func(context.Context, uint, uint) ([]models.User, error) { return nil, nil },
		removeFriendshipFn:         func(context.Context, uint, uint) error { return nil },
		countFriendsFn:             func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type followRepoStub struct {
	toggleFn         func(context.Context, uint, uint) (bool, int64, error)
	isFollowingFn    func(context.Context, uint, uint) (bool, error)
	followersFn      func(context.Context, uint) ([]models.User, error)
	followingFn      func(context.Context, uint) ([]models.User, error)
	countFollowersFn func(context.Context, uint) (int64, error)
}

func (s *followRepoStub) Toggle(ctx context.Context, followerID, followeeID uint) (bool, int64, error) {
	return s.toggleFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.isFollowingFn(ctx, followerID, followeeID)
}
func (s *followRepoStub) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followersFn(ctx, userID)
}
func (s *followRepoStub) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followingFn(ctx, userID)
}
func (s *followRepoStub) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	return s.countFollowersFn(ctx, userID)
}

func noopFollowRepo() *followRepoStub {
	return &followRepoStub{
		toggleFn:         func(context.Context, uint, uint) (bool, int64, error) { return true, 1, nil },
		isFollowingFn:    func(context.Context, uint, uint) (bool, error) { return false, nil },
		followersFn:      func(context.Context, uint) ([]models.User, error) { return nil, nil },
		followingFn:      func(context.Context, uint) ([]models.User, error) { return nil, nil },
		countFollowersFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type tripRepoStub struct {
	createWithMembersFn func(context.Context, *models.Trip, uint, []uint) error
	getByIDFn           func(context.Context, uint) (*models.Trip, error)
	listForUserFn       func(context.Context, uint) ([]models.Trip, error)
	listInvitesFn       func(context.Context, uint) ([]models.TripMembership, error)
	getMembershipFn     func(context.Context, uint, uint) (*models.TripMembership, error)
	inviteMembersFn     func(context.Context, uint, []uint) error
	acceptInviteFn      func(context.Context, uint) error
	declineInviteFn     func(context.Context, uint) error
	deleteFn            func(context.Context, uint) error
	countForUserFn      func(context.Context, uint) (int64, error)
}

func (s *tripRepoStub) CreateWithMembers(ctx context.Context, trip *models.Trip, ownerID uint, inviteeIDs []uint) error {
	return s.createWithMembersFn(ctx, trip, ownerID, inviteeIDs)
}
func (s *tripRepoStub) GetByID(ctx context.Context, id uint) (*models.Trip, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tripRepoStub) ListForUser(ctx context.Context, userID uint) ([]models.Trip, error) {
	return s.listForUserFn(ctx, userID)
}
func (s *tripRepoStub) ListInvites(ctx context.Context, userID uint) ([]models.TripMembership, error) {
	return s.listInvitesFn(ctx, userID)
}
func (s *tripRepoStub) GetMembership(ctx context.Context, tripID, userID uint) (*models.TripMembership, error) {
	return s.getMembershipFn(ctx, tripID, userID)
}
func (s *tripRepoStub) InviteMembers(ctx context.Context, tripID uint, userIDs []uint) error {
	return s.inviteMembersFn(ctx, tripID, userIDs)
}
func (s *tripRepoStub) AcceptInvite(ctx context.Context, membershipID uint) error {
	return s.acceptInviteFn(ctx, membershipID)
}
func (s *tripRepoStub) DeclineInvite(ctx context.Context, membershipID uint) error {
	return s.declineInviteFn(ctx, membershipID)
}
func (s *tripRepoStub) Delete(ctx context.Context, tripID uint) error {
	return s.deleteFn(ctx, tripID)
}
func (s *tripRepoStub) CountForUser(ctx context.Context, userID uint) (int64, error) {
	return s.countForUserFn(ctx, userID)
}

func noopTripRepo() *tripRepoStub {
	return &tripRepoStub{
		createWithMembersFn: func(_ context.Context, trip *models.Trip, _ uint, _ []uint) error {
			trip.ID = 1
			return nil
		},
		getByIDFn:       func(_ context.Context, id uint) (*models.Trip, error) { return &models.Trip{ID: id}, nil },
		listForUserFn:   func(context.Context, uint) ([]models.Trip, error) { return nil, nil },
		listInvitesFn:   func(context.Context, uint) ([]models.TripMembership, error) { return nil, nil },
		getMembershipFn: func(context.Context, uint, uint) (*models.TripMembership, error) { return nil, nil },
		inviteMembersFn: func(context.Context, uint, []uint) error { return nil },
		acceptInviteFn:  func(context.Context, uint) error { return nil },
		declineInviteFn: func(context.Context, uint) error { return nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		countForUserFn:  func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type postRepoStub struct {
	createWithPointsFn func(context.Context, *models.Post, int) error
	getByIDFn          func(context.Context, uint) (*models.Post, error)
	listFn             func(context.Context, uint, int, int) ([]models.Post, error)
	deleteFn           func(context.Context, uint) error
	toggleLikeFn       func(context.Context, uint, uint) (bool, int64, error)
	createCommentFn    func(context.Context, *models.Comment) error
	listCommentsFn     func(context.Context, uint) ([]models.Comment, error)
	countForUserFn     func(context.Context, uint) (int64, error)
}

func (s *postRepoStub) CreateWithPoints(ctx context.Context, post *models.Post, points int) error {
	return s.createWithPointsFn(ctx, post, points)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, viewerID uint, limit, offset int) ([]models.Post, error) {
	return s.listFn(ctx, viewerID, limit, offset)
}
func (s *postRepoStub) Delete(ctx context.Context, postID uint) error {
	return s.deleteFn(ctx, postID)
}
func (s *postRepoStub) ToggleLike(ctx context.Context, userID, postID uint) (bool, int64, error) {
	return s.toggleLikeFn(ctx, userID, postID)
}
func (s *postRepoStub) CreateComment(ctx context.Context, comment *models.Comment) error {
	return s.createCommentFn(ctx, comment)
}
func (s *postRepoStub) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listCommentsFn(ctx, postID)
}
func (s *postRepoStub) CountForUser(ctx context.Context, userID uint) (int64, error) {
	return s.countForUserFn(ctx, userID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createWithPointsFn: func(_ context.Context, post *models.Post, _ int) error {
			post.ID = 1
			return nil
		},
		getByIDFn:       func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		listFn:          func(context.Context, uint, int, int) ([]models.Post, error) { return nil, nil },
		deleteFn:        func(context.Context, uint) error { return nil },
		toggleLikeFn:    func(context.Context, uint, uint) (bool, int64, error) { return true, 1, nil },
		createCommentFn: func(context.Context, *models.Comment) error { return nil },
		listCommentsFn:  func(context.Context, uint) ([]models.Comment, error) { return nil, nil },
		countForUserFn:  func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

type rewardRepoStub struct {
	listFn    func(context.Context, uint) ([]models.Reward, error)
	getByIDFn func(context.Context, uint) (*models.Reward, error)
	claimFn   func(context.Context, uint, uint) error
}

func (s *rewardRepoStub) List(ctx context.Context, userID uint) ([]models.Reward, error) {
	return s.listFn(ctx, userID)
}
func (s *rewardRepoStub) GetByID(ctx context.Context, id uint) (*models.Reward, error) {
	return s.getByIDFn(ctx, id)
}
func (s *rewardRepoStub) Claim(ctx context.Context, userID, rewardID uint) error {
	return s.claimFn(ctx, userID, rewardID)
}

func noopRewardRepo() *rewardRepoStub {
	return &rewardRepoStub{
		listFn:    func(context.Context, uint) ([]models.Reward, error) { return nil, nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Reward, error) { return &models.Reward{ID: id}, nil },
		claimFn:   func(context.Context, uint, uint) error { return nil },
	}
}

type suggestionRepoStub struct {
	createBatchFn func(context.Context, []models.Suggestion) error
	listForTripFn func(context.Context, uint) ([]models.Suggestion, error)
}

func (s *suggestionRepoStub) CreateBatch(ctx context.Context, suggestions []models.Suggestion) error {
	return s.createBatchFn(ctx, suggestions)
}
func (s *suggestionRepoStub) ListForTrip(ctx context.Context, tripID uint) ([]models.Suggestion, error) {
	return s.listForTripFn(ctx, tripID)
}

func noopSuggestionRepo() *suggestionRepoStub {
	return &suggestionRepoStub{
		createBatchFn: func(context.Context, []models.Suggestion) error { return nil },
		listForTripFn: func(context.Context, uint) ([]models.Suggestion, error) { return nil, nil },
	}
}

func assertAppErrorCode(err error, code string) bool {
	appErr, ok := err.(*models.AppError)
	return ok && appErr.Code == code
}
