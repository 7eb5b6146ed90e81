package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nsidc/usaon-vta-survey/domain/query"
	"github.com/nsidc/usaon-vta-survey/domain/survey"
	"github.com/nsidc/usaon-vta-survey/internal/database"
)

// ObservingSystemParams configures a new observing system.
// A nil Details records a system of type "other".
type ObservingSystemParams struct {
	Name    string
	Details survey.ObservingSystemDetails
	Info    survey.ObservingSystemInfo
}

// DataProductParams configures a new data product.
type DataProductParams struct {
	Name         string
	Satisfaction int
}

// AssessmentParams carries the ratings and free text recorded on an association.
type AssessmentParams struct {
	Contribution       int
	Satisfaction       int
	Rationale          *string
	NeededImprovements *string
}

func (p AssessmentParams) assessment() (survey.Assessment, error) {
	contribution, err := survey.NewRating(p.Contribution)
	if err != nil {
		return survey.Assessment{}, fmt.Errorf("contribution: %w", err)
	}
	satisfaction, err := survey.NewRating(p.Satisfaction)
	if err != nil {
		return survey.Assessment{}, fmt.Errorf("satisfaction: %w", err)
	}
	return survey.NewAssessment(contribution, satisfaction, p.Rationale, p.NeededImprovements)
}

// Submission writes survey answers. Every call is one transaction, and every
// write under a response advances that response's updated timestamp.
type Submission struct {
	db     database.Database
	stores Stores
	clock  func() time.Time
	closed *atomic.Bool
	logger *slog.Logger
}

// NewSubmission creates a new Submission service. closed may be nil.
func NewSubmission(db database.Database, stores Stores, closed *atomic.Bool, logger *slog.Logger) *Submission {
	return &Submission{
		db:     db,
		stores: stores,
		clock:  func() time.Time { return time.Now().UTC() },
		closed: closed,
		logger: logger,
	}
}

// Start opens a survey and the response that collects its answers.
func (s *Submission) Start(ctx context.Context, notes *string) (survey.Survey, survey.Response, error) {
	if err := checkOpen(s.closed); err != nil {
		return survey.Survey{}, survey.Response{}, err
	}
	sv, err := survey.NewSurvey(notes)
	if err != nil {
		return survey.Survey{}, survey.Response{}, fmt.Errorf("new survey: %w", err)
	}

	type started struct {
		survey   survey.Survey
		response survey.Response
	}
	result, err := database.WithTransactionResult(ctx, s.db, func(ctx context.Context) (started, error) {
		response, err := s.stores.Responses.Create(ctx, survey.NewResponse())
		if err != nil {
			return started{}, fmt.Errorf("create response: %w", err)
		}
		created, err := s.stores.Surveys.Create(ctx, sv.WithResponse(response.ID()))
		if err != nil {
			return started{}, fmt.Errorf("create survey: %w", err)
		}
		return started{survey: created, response: response}, nil
	})
	if err != nil {
		return survey.Survey{}, survey.Response{}, err
	}

	s.logger.InfoContext(ctx, "survey started",
		slog.String("survey_id", result.survey.ID().String()),
		slog.Int64("response_id", result.response.ID()),
	)
	return result.survey, result.response, nil
}

// Respond creates a response for an existing survey that has none yet.
// A survey that already has a response returns it unchanged.
func (s *Submission) Respond(ctx context.Context, surveyID uuid.UUID) (survey.Response, error) {
	if err := checkOpen(s.closed); err != nil {
		return survey.Response{}, err
	}
	return database.WithTransactionResult(ctx, s.db, func(ctx context.Context) (survey.Response, error) {
		sv, err := s.stores.Surveys.Get(ctx, surveyID)
		if err != nil {
			return survey.Response{}, fmt.Errorf("get survey: %w", err)
		}
		if sv.HasResponse() {
			return s.stores.Responses.Get(ctx, sv.ResponseID())
		}

		response, err := s.stores.Responses.Create(ctx, survey.NewResponse())
		if err != nil {
			return survey.Response{}, fmt.Errorf("create response: %w", err)
		}
		if _, err := s.stores.Surveys.LinkResponse(ctx, surveyID, response.ID()); err != nil {
			return survey.Response{}, fmt.Errorf("link response: %w", err)
		}
		return response, nil
	})
}

// Pending lists surveys with no response, newest first. A limit of zero
// returns every such survey.
func (s *Submission) Pending(ctx context.Context, limit, offset int) ([]survey.Survey, error) {
	if err := checkOpen(s.closed); err != nil {
		return nil, err
	}
	options := append([]query.Option{
		survey.WithoutResponse(),
		query.WithOrderDesc("created_timestamp"),
		query.WithOrderDesc("id"),
	}, query.WithPagination(limit, offset)...)
	surveys, err := s.stores.Surveys.Find(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("find pending surveys: %w", err)
	}
	return surveys, nil
}

// AddObservingSystem records an observing system under a response.
func (s *Submission) AddObservingSystem(ctx context.Context, responseID int64, params ObservingSystemParams) (survey.ObservingSystem, error) {
	if err := checkOpen(s.closed); err != nil {
		return survey.ObservingSystem{}, err
	}
	o, err := survey.NewObservingSystem(responseID, params.Name, params.Details, params.Info)
	if err != nil {
		s.rejected(ctx, "observing system", responseID, err)
		return survey.ObservingSystem{}, err
	}

	created, err := database.WithTransactionResult(ctx, s.db, func(ctx context.Context) (survey.ObservingSystem, error) {
		created, err := s.stores.ObservingSystems.Create(ctx, o)
		if err != nil {
			return survey.ObservingSystem{}, err
		}
		return created, s.touch(ctx, responseID)
	})
	if err != nil {
		s.rejected(ctx, "observing system", responseID, err)
		return survey.ObservingSystem{}, err
	}

	s.logger.DebugContext(ctx, "observing system added",
		slog.Int64("response_id", responseID),
		slog.Int64("id", created.ID()),
		slog.String("type", created.Type().String()),
	)
	return created, nil
}

// AddDataProduct records a data product under a response.
func (s *Submission) AddDataProduct(ctx context.Context, responseID int64, params DataProductParams) (survey.DataProduct, error) {
	if err := checkOpen(s.closed); err != nil {
		return survey.DataProduct{}, err
	}
	satisfaction, err := survey.NewRating(params.Satisfaction)
	if err != nil {
		s.rejected(ctx, "data product", responseID, err)
		return survey.DataProduct{}, fmt.Errorf("satisfaction: %w", err)
	}
	d, err := survey.NewDataProduct(responseID, params.Name, satisfaction)
	if err != nil {
		s.rejected(ctx, "data product", responseID, err)
		return survey.DataProduct{}, err
	}

	created, err := database.WithTransactionResult(ctx, s.db, func(ctx context.Context) (survey.DataProduct, error) {
		created, err := s.stores.DataProducts.Create(ctx, d)
		if err != nil {
			return survey.DataProduct{}, err
		}
		return created, s.touch(ctx, responseID)
	})
	if err != nil {
		s.rejected(ctx, "data product", responseID, err)
		return survey.DataProduct{}, err
	}

	s.logger.DebugContext(ctx, "data product added", slog.Int64("response_id", responseID), slog.Int64("id", created.ID()))
	return created, nil
}

// AddApplication records an application under a response.
func (s *Submission) AddApplication(ctx context.Context, responseID int64, name string) (survey.Application, error) {
	if err := checkOpen(s.closed); err != nil {
		return survey.Application{}, err
	}
	a, err := survey.NewApplication(responseID, name)
	if err != nil {
		s.rejected(ctx, "application", responseID, err)
		return survey.Application{}, err
	}

	created, err := database.WithTransactionResult(ctx, s.db, func(ctx context.Context) (survey.Application, error) {
		created, err := s.stores.Applications.Create(ctx, a)
		if err != nil {
			return survey.Application{}, err
		}
		return created, s.touch(ctx, responseID)
	})
	if err != nil {
		s.rejected(ctx, "application", responseID, err)
		return survey.Application{}, err
	}

	s.logger.DebugContext(ctx, "application added", slog.Int64("response_id", responseID), slog.Int64("id", created.ID()))
	return created, nil
}

// LinkObservingSystemDataProduct records that an observing system contributes
// to a data product. Both must belong to the same response.
func (s *Submission) LinkObservingSystemDataProduct(ctx context.Context, observingSystemID, dataProductID int64, params AssessmentParams) (survey.ObservingSystemDataProduct, error) {
	if err := checkOpen(s.closed); err != nil {
		return survey.ObservingSystemDataProduct{}, err
	}
	assessment, err := params.assessment()
	if err != nil {
		return survey.ObservingSystemDataProduct{}, err
	}
	link, err := survey.NewObservingSystemDataProduct(observingSystemID, dataProductID, assessment)
	if err != nil {
		return survey.ObservingSystemDataProduct{}, err
	}

	return database.WithTransactionResult(ctx, s.db, func(ctx context.Context) (survey.ObservingSystemDataProduct, error) {
		o, err := s.stores.ObservingSystems.Get(ctx, observingSystemID)
		if err != nil {
			return survey.ObservingSystemDataProduct{}, fmt.Errorf("get observing system: %w", err)
		}
		d, err := s.stores.DataProducts.Get(ctx, dataProductID)
		if err != nil {
			return survey.ObservingSystemDataProduct{}, fmt.Errorf("get data product: %w", err)
		}
		if o.ResponseID() != d.ResponseID() {
			err := fmt.Errorf("%w: observing system %d is in response %d, data product %d is in response %d",
				survey.ErrCrossResponseLink, o.ID(), o.ResponseID(), d.ID(), d.ResponseID())
			s.rejected(ctx, "observing system data product", o.ResponseID(), err)
			return survey.ObservingSystemDataProduct{}, err
		}

		created, err := s.stores.SystemProducts.Create(ctx, link)
		if err != nil {
			s.rejected(ctx, "observing system data product", o.ResponseID(), err)
			return survey.ObservingSystemDataProduct{}, err
		}
		if err := s.touch(ctx, o.ResponseID()); err != nil {
			return survey.ObservingSystemDataProduct{}, err
		}
		s.logger.DebugContext(ctx, "observing system linked to data product",
			slog.Int64("response_id", o.ResponseID()),
			slog.Int64("observing_system_id", observingSystemID),
			slog.Int64("data_product_id", dataProductID),
		)
		return created, nil
	})
}

// LinkDataProductApplication records that a data product serves an application.
// Both must belong to the same response.
func (s *Submission) LinkDataProductApplication(ctx context.Context, dataProductID, applicationID int64, params AssessmentParams) (survey.DataProductApplication, error) {
	if err := checkOpen(s.closed); err != nil {
		return survey.DataProductApplication{}, err
	}
	assessment, err := params.assessment()
	if err != nil {
		return survey.DataProductApplication{}, err
	}
	link, err := survey.NewDataProductApplication(dataProductID, applicationID, assessment)
	if err != nil {
		return survey.DataProductApplication{}, err
	}

	return database.WithTransactionResult(ctx, s.db, func(ctx context.Context) (survey.DataProductApplication, error) {
		d, err := s.stores.DataProducts.Get(ctx, dataProductID)
		if err != nil {
			return survey.DataProductApplication{}, fmt.Errorf("get data product: %w", err)
		}
		a, err := s.stores.Applications.Get(ctx, applicationID)
		if err != nil {
			return survey.DataProductApplication{}, fmt.Errorf("get application: %w", err)
		}
		if d.ResponseID() != a.ResponseID() {
			err := fmt.Errorf("%w: data product %d is in response %d, application %d is in response %d",
				survey.ErrCrossResponseLink, d.ID(), d.ResponseID(), a.ID(), a.ResponseID())
			s.rejected(ctx, "data product application", d.ResponseID(), err)
			return survey.DataProductApplication{}, err
		}

		created, err := s.stores.ProductApps.Create(ctx, link)
		if err != nil {
			s.rejected(ctx, "data product application", d.ResponseID(), err)
			return survey.DataProductApplication{}, err
		}
		if err := s.touch(ctx, d.ResponseID()); err != nil {
			return survey.DataProductApplication{}, err
		}
		s.logger.DebugContext(ctx, "data product linked to application",
			slog.Int64("response_id", d.ResponseID()),
			slog.Int64("data_product_id", dataProductID),
			slog.Int64("application_id", applicationID),
		)
		return created, nil
	})
}

// LinkApplicationSocietalBenefitArea records that an application benefits a
// societal benefit area from the taxonomy.
func (s *Submission) LinkApplicationSocietalBenefitArea(ctx context.Context, applicationID int64, areaID string) (survey.ApplicationSocietalBenefitArea, error) {
	if err := checkOpen(s.closed); err != nil {
		return survey.ApplicationSocietalBenefitArea{}, err
	}
	link, err := survey.NewApplicationSocietalBenefitArea(applicationID, areaID)
	if err != nil {
		return survey.ApplicationSocietalBenefitArea{}, err
	}

	return database.WithTransactionResult(ctx, s.db, func(ctx context.Context) (survey.ApplicationSocietalBenefitArea, error) {
		a, err := s.stores.Applications.Get(ctx, applicationID)
		if err != nil {
			return survey.ApplicationSocietalBenefitArea{}, fmt.Errorf("get application: %w", err)
		}
		exists, err := s.stores.Taxonomy.AreaExists(ctx, areaID)
		if err != nil {
			return survey.ApplicationSocietalBenefitArea{}, fmt.Errorf("check area: %w", err)
		}
		if !exists {
			err := fmt.Errorf("%w: %q", ErrUnknownSocietalBenefitArea, areaID)
			s.rejected(ctx, "application societal benefit area", a.ResponseID(), err)
			return survey.ApplicationSocietalBenefitArea{}, err
		}

		created, err := s.stores.ApplicationAreas.Create(ctx, link)
		if err != nil {
			s.rejected(ctx, "application societal benefit area", a.ResponseID(), err)
			return survey.ApplicationSocietalBenefitArea{}, err
		}
		if err := s.touch(ctx, a.ResponseID()); err != nil {
			return survey.ApplicationSocietalBenefitArea{}, err
		}
		s.logger.DebugContext(ctx, "application linked to societal benefit area",
			slog.Int64("response_id", a.ResponseID()),
			slog.Int64("application_id", applicationID),
			slog.String("area_id", areaID),
		)
		return created, nil
	})
}

func (s *Submission) touch(ctx context.Context, responseID int64) error {
	if err := s.stores.Responses.Touch(ctx, responseID, s.clock()); err != nil {
		return fmt.Errorf("touch response: %w", err)
	}
	return nil
}

func (s *Submission) rejected(ctx context.Context, entity string, responseID int64, err error) {
	s.logger.WarnContext(ctx, "write rejected",
		slog.String("entity", entity),
		slog.Int64("response_id", responseID),
		slog.Any("error", err),
	)
}
