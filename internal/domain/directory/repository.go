package directory

import "context"

// Repository provides the read-only org lookups the validation rules and
// change-log synthesizer depend on. Lookups return (nil, nil) when the
// entity does not exist; errors are reserved for storage failures.
type Repository interface {
	DepartmentByID(ctx context.Context, id uint) (*Department, error)
	StaffByID(ctx context.Context, id uint) (*Staff, error)
	ClientByID(ctx context.Context, id uint) (*Client, error)
	ContactByID(ctx context.Context, id uint) (*Contact, error)
	ServiceByID(ctx context.Context, id uint) (*Service, error)

	// AutoCloseDepartments returns every department with an inactivity
	// window configured.
	AutoCloseDepartments(ctx context.Context) ([]*Department, error)
}
