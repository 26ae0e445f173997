package service

import (
	"context"
	"errors"
	"time"

	"markethub/internal/models"
	"markethub/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// reviewEditWindow — срок после создания, в течение которого владелец может
// править или удалять свою рецензию. Staff окном не ограничен.
const reviewEditWindow = 15 * time.Minute

type reviewService struct {
	repo *repository.Repository
	now  func() time.Time
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		now:  time.Now,
		log:  log,
	}
}

func (s *reviewService) CreateReview(ctx context.Context, in CreateReviewInput) (*models.Review, error) {
	actor, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, ErrRatingOutOfRange
	}

	p, err := s.repo.Products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	if !actor.IsStaff {
		delivered, err := s.repo.Orders.HasDeliveredWithProduct(ctx, actor.UserID, in.ProductID)
		if err != nil {
			return nil, err
		}
		if !delivered {
			return nil, ErrReviewNotEligible
		}
		exists, err := s.repo.Reviews.ExistsByUserAndProduct(ctx, actor.UserID, in.ProductID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrReviewExists
		}
	}

	rev := &models.Review{
		UserID:    actor.UserID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}
	if err := s.repo.Reviews.Create(ctx, rev); err != nil {
		// UNIQUE(user_id, product_id) — гонка при двойной отправке
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrReviewExists
		}
		return nil, err
	}
	return s.repo.Reviews.GetByID(ctx, rev.ID)
}

func (s *reviewService) GetReview(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	rev, err := s.repo.Reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rev == nil {
		return nil, ErrReviewNotFound
	}
	return rev, nil
}

func (s *reviewService) ListReviews(ctx context.Context, in ReviewListInput) ([]models.Review, int64, error) {
	return s.repo.Reviews.List(ctx, repository.ReviewListFilter{
		ProductID: in.ProductID,
		UserID:    in.UserID,
		Limit:     in.Limit,
		Offset:    in.Offset,
	})
}

// canMutate: staff — всегда; владелец — в пределах окна редактирования.
func (s *reviewService) canMutate(actor Actor, rev *models.Review) error {
	if actor.IsStaff {
		return nil
	}
	if rev.UserID != actor.UserID {
		return ErrForbidden
	}
	if s.now().After(rev.CreatedAt.Add(reviewEditWindow)) {
		return ErrEditWindowExpired
	}
	return nil
}

func (s *reviewService) UpdateReview(ctx context.Context, id uuid.UUID, in UpdateReviewInput) (*models.Review, error) {
	actor, err := requireAuth(ctx)
	if err != nil {
		return nil, err
	}

	rev, err := s.repo.Reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rev == nil {
		return nil, ErrReviewNotFound
	}
	if err := s.canMutate(actor, rev); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if in.Rating != nil {
		if *in.Rating < 1 || *in.Rating > 5 {
			return nil, ErrRatingOutOfRange
		}
		fields["rating"] = *in.Rating
	}
	if in.Comment != nil {
		fields["comment"] = *in.Comment
	}

	if err := s.repo.Reviews.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.repo.Reviews.GetByID(ctx, id)
}

func (s *reviewService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	actor, err := requireAuth(ctx)
	if err != nil {
		return err
	}

	rev, err := s.repo.Reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rev == nil {
		return ErrReviewNotFound
	}
	if err := s.canMutate(actor, rev); err != nil {
		return err
	}

	ok, err := s.repo.Reviews.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrReviewNotFound
	}
	return nil
}
