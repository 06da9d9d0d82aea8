// Package directory holds the read-only organizational lookups the
// ticket engine validates against: departments, staff, clients, and the
// services a client owns. The ticket engine never mutates these.
package directory

// Department is a ticket queue belonging to one company. When
// AutoCloseMinutes is non-zero, the inactivity sweep closes eligible
// tickets whose newest staff reply is older than that window, optionally
// appending the canned reply first.
type Department struct {
	ID               uint
	CompanyID        uint
	Name             string
	Email            string
	AutoCloseMinutes int
	AutoCloseReply   string
}

// AutoCloseEnabled reports whether the department participates in the
// inactivity sweep.
func (d *Department) AutoCloseEnabled() bool {
	return d.AutoCloseMinutes > 0
}

// Staff is a support agent. Signature is appended to outbound replies by
// clients of this package; a reply whose body is nothing but the
// author's signature is treated as empty.
type Staff struct {
	ID        uint
	CompanyID uint
	FirstName string
	LastName  string
	Email     string
	Signature string
}

// FullName returns the staff member's display name.
func (s *Staff) FullName() string {
	if s.FirstName == "" {
		return s.LastName
	}
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}

// Client is a customer account.
type Client struct {
	ID        uint
	CompanyID uint
	FirstName string
	LastName  string
	Email     string
}

// Contact is a non-primary person on a client account who may author
// replies.
type Contact struct {
	ID        uint
	ClientID  uint
	FirstName string
	LastName  string
	Email     string
}

// Service is a provisioned product owned by one client. A ticket's
// service must belong to the ticket's client.
type Service struct {
	ID       uint
	ClientID uint
	Name     string
}
