package survey

import "fmt"

// DataProduct is a data product reported by the respondent.
type DataProduct struct {
	id           int64
	responseID   int64
	name         string
	satisfaction Rating
}

// NewDataProduct validates and creates an unsaved DataProduct.
func NewDataProduct(responseID int64, name string, satisfaction Rating) (DataProduct, error) {
	if responseID == 0 {
		return DataProduct{}, ErrMissingResponse
	}
	if err := checkName(name); err != nil {
		return DataProduct{}, fmt.Errorf("data product: %w", err)
	}
	return DataProduct{
		responseID:   responseID,
		name:         name,
		satisfaction: satisfaction,
	}, nil
}

// ReconstructDataProduct reconstructs a DataProduct from persistence.
func ReconstructDataProduct(id, responseID int64, name string, satisfaction Rating) DataProduct {
	return DataProduct{
		id:           id,
		responseID:   responseID,
		name:         name,
		satisfaction: satisfaction,
	}
}

// ID returns the data product id.
func (d DataProduct) ID() int64 { return d.id }

// ResponseID returns the owning response id.
func (d DataProduct) ResponseID() int64 { return d.responseID }

// Name returns the data product name.
func (d DataProduct) Name() string { return d.name }

// Satisfaction returns the respondent's satisfaction rating.
func (d DataProduct) Satisfaction() Rating { return d.satisfaction }

// Application is an end use of one or more data products.
type Application struct {
	id         int64
	responseID int64
	name       string
}

// NewApplication validates and creates an unsaved Application.
func NewApplication(responseID int64, name string) (Application, error) {
	if responseID == 0 {
		return Application{}, ErrMissingResponse
	}
	if err := checkName(name); err != nil {
		return Application{}, fmt.Errorf("application: %w", err)
	}
	return Application{responseID: responseID, name: name}, nil
}

// ReconstructApplication reconstructs an Application from persistence.
func ReconstructApplication(id, responseID int64, name string) Application {
	return Application{id: id, responseID: responseID, name: name}
}

// ID returns the application id.
func (a Application) ID() int64 { return a.id }

// ResponseID returns the owning response id.
func (a Application) ResponseID() int64 { return a.responseID }

// Name returns the application name.
func (a Application) Name() string { return a.name }
