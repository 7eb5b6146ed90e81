package survey

import "github.com/nsidc/usaon-vta-survey/domain/query"

// WithResponseID filters by the "response_id" column.
func WithResponseID(id int64) query.Option {
	return query.WithCondition("response_id", id)
}

// WithoutResponse filters for rows with no response linked.
func WithoutResponse() query.Option {
	return query.WithNull("response_id")
}

// WithType filters observing systems by discriminator.
func WithType(t ObservingSystemType) query.Option {
	return query.WithCondition("type", string(t))
}

// WithObservingSystemID filters by the "response_observing_system_id" column.
func WithObservingSystemID(id int64) query.Option {
	return query.WithCondition("response_observing_system_id", id)
}

// WithObservingSystemIDIn filters by the "response_observing_system_id" column using IN.
func WithObservingSystemIDIn(ids []int64) query.Option {
	return query.WithConditionIn("response_observing_system_id", ids)
}

// WithDataProductIDIn filters by the "response_data_product_id" column using IN.
func WithDataProductIDIn(ids []int64) query.Option {
	return query.WithConditionIn("response_data_product_id", ids)
}

// WithApplicationID filters by the "response_application_id" column.
func WithApplicationID(id int64) query.Option {
	return query.WithCondition("response_application_id", id)
}

// WithApplicationIDIn filters by the "response_application_id" column using IN.
func WithApplicationIDIn(ids []int64) query.Option {
	return query.WithConditionIn("response_application_id", ids)
}
