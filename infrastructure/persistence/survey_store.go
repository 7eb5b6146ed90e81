package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nsidc/usaon-vta-survey/domain/query"
	"github.com/nsidc/usaon-vta-survey/domain/survey"
	"github.com/nsidc/usaon-vta-survey/internal/database"
)

var (
	// ErrResponseAlreadyLinked is returned when linking a survey that already has a response.
	ErrResponseAlreadyLinked = errors.New("survey already has a response")
	// ErrInvalidSurveyID is returned when a stored survey id is not a UUID.
	ErrInvalidSurveyID = errors.New("invalid survey id")
)

// SurveyStore implements survey.SurveyStore using GORM.
type SurveyStore struct {
	database.Repository[survey.Survey, SurveyModel]
}

// NewSurveyStore creates a new SurveyStore.
func NewSurveyStore(db database.Database) SurveyStore {
	return SurveyStore{
		Repository: database.NewRepository[survey.Survey, SurveyModel](db, SurveyMapper{}, "survey"),
	}
}

// Get returns the survey with the given id.
func (s SurveyStore) Get(ctx context.Context, id uuid.UUID) (survey.Survey, error) {
	found, err := s.Find(ctx, query.WithCondition("id", id.String()), query.WithLimit(1))
	if err != nil {
		return survey.Survey{}, err
	}
	if len(found) == 0 {
		return survey.Survey{}, fmt.Errorf("%w: survey", database.ErrNotFound)
	}
	return found[0], nil
}

// Find returns the surveys matching options.
func (s SurveyStore) Find(ctx context.Context, options ...query.Option) ([]survey.Survey, error) {
	var models []SurveyModel
	db := database.ApplyOptions(s.DB(ctx).Model(&SurveyModel{}), options...)
	if err := db.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("find survey: %w", err)
	}
	mapper := SurveyMapper{}
	surveys := make([]survey.Survey, len(models))
	for i, m := range models {
		sv, err := mapper.Parse(m)
		if err != nil {
			return nil, err
		}
		surveys[i] = sv
	}
	return surveys, nil
}

// LinkResponse sets the response of a survey. Once set, a survey's response never changes.
func (s SurveyStore) LinkResponse(ctx context.Context, id uuid.UUID, responseID int64) (survey.Survey, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return survey.Survey{}, err
	}
	if current.HasResponse() {
		if current.ResponseID() == responseID {
			return current, nil
		}
		return survey.Survey{}, fmt.Errorf("%w: survey %s", ErrResponseAlreadyLinked, id)
	}

	result := s.DB(ctx).Model(&SurveyModel{}).
		Where("id = ? AND response_id IS NULL", id.String()).
		Update("response_id", responseID)
	if result.Error != nil {
		return survey.Survey{}, fmt.Errorf("link survey response: %w", database.Classify(result.Error))
	}
	if result.RowsAffected == 0 {
		return survey.Survey{}, fmt.Errorf("%w: survey %s", ErrResponseAlreadyLinked, id)
	}
	return current.WithResponse(responseID), nil
}

// DetachResponse clears response_id on every survey linked to the response.
func (s SurveyStore) DetachResponse(ctx context.Context, responseID int64) (int64, error) {
	result := s.DB(ctx).Model(&SurveyModel{}).
		Where("response_id = ?", responseID).
		Update("response_id", nil)
	if result.Error != nil {
		return 0, fmt.Errorf("detach survey response: %w", database.Classify(result.Error))
	}
	return result.RowsAffected, nil
}

// ResponseStore implements survey.ResponseStore using GORM.
type ResponseStore struct {
	database.Repository[survey.Response, ResponseModel]
}

// NewResponseStore creates a new ResponseStore.
func NewResponseStore(db database.Database) ResponseStore {
	return ResponseStore{
		Repository: database.NewRepository[survey.Response, ResponseModel](db, ResponseMapper{}, "response"),
	}
}

// Get returns the response with the given id.
func (s ResponseStore) Get(ctx context.Context, id int64) (survey.Response, error) {
	return s.FindOne(ctx, query.WithID(id))
}

// Touch advances updated_timestamp to at. An earlier at leaves the row unchanged.
func (s ResponseStore) Touch(ctx context.Context, id int64, at time.Time) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("touch response %d: %w", id, err)
	}
	touched := current.Touch(at)
	if touched.UpdatedAt().Equal(current.UpdatedAt()) {
		return nil
	}
	err = s.DB(ctx).Model(&ResponseModel{}).
		Where("id = ?", id).
		Update("updated_timestamp", touched.UpdatedAt().UTC()).Error
	if err != nil {
		return fmt.Errorf("touch response %d: %w", id, database.Classify(err))
	}
	return nil
}

// Delete removes a single response row. Children must already be gone;
// otherwise the foreign keys reject the delete.
func (s ResponseStore) Delete(ctx context.Context, id int64) error {
	n, err := s.DeleteBy(ctx, query.WithID(id))
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("delete response %d: %w", id, database.ErrNotFound)
	}
	return nil
}
