package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"hotelcore/dto"
	apperrors "hotelcore/errors"
	"hotelcore/models"
	"hotelcore/services/logger"
	"hotelcore/services/notification"
	"hotelcore/store"
	"hotelcore/validator"
)

func RatingCacheKey(resourceID string) string {
	return "rating_summary:" + resourceID
}

// RatingService ghi nhận đánh giá và giữ aggregate khớp với danh sách đánh giá.
type RatingService struct {
	store          store.RatingStore
	locker         Locker
	cache          Cache
	notifier       notification.Service
	logger         logger.Logger
	now            func() time.Time
	cacheTTL       time.Duration
	storageTimeout time.Duration
	lockTimeout    time.Duration
}

type RatingServiceOptions struct {
	Store          store.RatingStore
	Locker         Locker
	Cache          Cache
	Notifier       notification.Service
	Logger         logger.Logger
	Now            func() time.Time
	CacheTTL       time.Duration
	StorageTimeout time.Duration
	LockTimeout    time.Duration
}

func NewRatingService(opts RatingServiceOptions) *RatingService {
	s := &RatingService{
		store:          opts.Store,
		locker:         opts.Locker,
		cache:          opts.Cache,
		notifier:       opts.Notifier,
		logger:         logger.OrNop(opts.Logger),
		now:            opts.Now,
		cacheTTL:       opts.CacheTTL,
		storageTimeout: opts.StorageTimeout,
		lockTimeout:    opts.LockTimeout,
	}
	if s.locker == nil {
		s.locker = NewKeyedMutex()
	}
	if s.cache == nil {
		s.cache = NopCache{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.lockTimeout <= 0 {
		s.lockTimeout = defaultLockTimeout
	}
	return s
}

// AddRating: mỗi user chỉ đánh giá một resource một lần. Aggregate được tính lại
// từ toàn bộ danh sách đánh giá rồi ghi cùng lúc với đánh giá mới.
func (s *RatingService) AddRating(ctx context.Context, resourceID, userID string, rating int) (*dto.RatingSummary, error) {
	if err := validator.ValidateRating(rating); err != nil {
		return nil, err
	}
	if resourceID == "" || userID == "" {
		return nil, apperrors.NewAppError(apperrors.ErrCodeRequiredField, "resourceId and userId are required", nil)
	}

	ctx, cancel := withStorageTimeout(ctx, s.storageTimeout)
	defer cancel()

	unlock, err := lockWithTimeout(ctx, s.locker, RatingLockKey(resourceID), s.lockTimeout)
	if err != nil {
		return nil, err
	}
	defer unlock()

	kind, _, err := s.store.FindRateable(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.ListRatings(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if e.UserID == userID {
			return nil, apperrors.Newf(apperrors.ErrCodeDuplicateRating, "user %s already rated %s", userID, resourceID)
		}
	}

	entry := models.Rating{
		ID:           uuid.NewString(),
		ResourceID:   resourceID,
		ResourceKind: kind,
		UserID:       userID,
		Rating:       rating,
		CreatedAt:    s.now(),
	}
	agg := models.ComputeRatingAggregate(append(entries, entry))

	if err := s.store.ApplyRating(ctx, store.RatingChange{Entry: entry, Kind: kind, Aggregate: agg}); err != nil {
		return nil, err
	}

	// Vẫn giữ khóa rating:<id> nên không reader nào ghi đè summary cũ lên cache.
	fresh := dto.NewRatingSummary(resourceID, kind, agg)
	if err := s.cache.Set(ctx, RatingCacheKey(resourceID), fresh, s.cacheTTL); err != nil {
		s.logger.Warn("refresh rating cache for %s: %v", resourceID, err)
		if err := s.cache.Delete(ctx, RatingCacheKey(resourceID)); err != nil {
			s.logger.Warn("invalidate rating cache for %s: %v", resourceID, err)
		}
	}
	s.logger.Info("rating %d added to %s %s by %s (mean %.1f over %d)", rating, kind, resourceID, userID, agg.Mean, agg.TotalCount)
	s.notify(models.Notification{
		Event:      models.EventRatingAdded,
		Payload:    models.EventPayload{ResourceID: resourceID, ActorID: userID, Rating: rating},
		OccurredAt: entry.CreatedAt,
	})

	summary := dto.NewRatingSummary(resourceID, kind, agg)
	summary.UserRating = &entry.Rating
	return &summary, nil
}

// GetRatingSummary đọc aggregate (qua cache) và, nếu có userID, điểm của user đó.
func (s *RatingService) GetRatingSummary(ctx context.Context, resourceID, userID string) (*dto.RatingSummary, error) {
	ctx, cancel := withStorageTimeout(ctx, s.storageTimeout)
	defer cancel()

	var summary dto.RatingSummary
	found, err := s.cache.Get(ctx, RatingCacheKey(resourceID), &summary)
	if err != nil {
		s.logger.Warn("read rating cache for %s: %v", resourceID, err)
		found = false
	}
	if !found {
		loaded, err := s.loadSummary(ctx, resourceID)
		if err != nil {
			return nil, err
		}
		summary = *loaded
	}

	if userID != "" {
		own, err := s.store.GetUserRating(ctx, resourceID, userID)
		switch {
		case err == nil:
			summary.UserRating = &own.Rating
		case errors.Is(err, apperrors.ErrNotFound):
		default:
			return nil, err
		}
	}
	return &summary, nil
}

// loadSummary đọc aggregate từ store. Cache chỉ được ghi khi giữ khóa rating:<id>,
// cùng khóa với AddRating, để một lần đọc chậm không ghi đè aggregate mới hơn.
// Không lấy được khóa thì vẫn trả kết quả nhưng bỏ qua cache.
func (s *RatingService) loadSummary(ctx context.Context, resourceID string) (*dto.RatingSummary, error) {
	unlock, lockErr := lockWithTimeout(ctx, s.locker, RatingLockKey(resourceID), s.lockTimeout)
	if lockErr == nil {
		defer unlock()
	} else {
		s.logger.Warn("skip rating cache fill for %s: %v", resourceID, lockErr)
	}

	kind, agg, err := s.store.FindRateable(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	summary := dto.NewRatingSummary(resourceID, kind, agg)
	if lockErr == nil {
		if err := s.cache.Set(ctx, RatingCacheKey(resourceID), summary, s.cacheTTL); err != nil {
			s.logger.Warn("write rating cache for %s: %v", resourceID, err)
		}
	}
	return &summary, nil
}

func (s *RatingService) notify(n models.Notification) {
	if s.notifier == nil {
		return
	}
	go func() {
		if err := s.notifier.Send(n); err != nil {
			s.logger.Error("notify %s for %s: %v", n.Event, n.Payload.ResourceID, err)
		}
	}()
}

// CreateRestaurant đăng ký nhà hàng như một resource có thể đánh giá.
func (s *RatingService) CreateRestaurant(ctx context.Context, req dto.CreateRestaurantRequest) (*models.Restaurant, error) {
	if err := validator.Struct(req); err != nil {
		return nil, err
	}
	r := &models.Restaurant{
		ID:      uuid.NewString(),
		Name:    req.Name,
		Cuisine: req.Cuisine,
		Rating:  models.RatingAggregate{Histogram: models.NewHistogram()},
	}
	ctx, cancel := withStorageTimeout(ctx, s.storageTimeout)
	defer cancel()
	if err := s.store.CreateRestaurant(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}
