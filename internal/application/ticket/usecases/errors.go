package usecases

import "fmt"

// Shared rule-violation reasons reused across rule sets.
var (
	errServiceNotFound = fmt.Errorf("Service not found")
	errServiceNotOwned = fmt.Errorf("Service does not belong to the selected client")
	errEmailRequired   = fmt.Errorf("Please enter an email address")
	errSummaryEmpty    = fmt.Errorf("Summary cannot be empty")
	errClientInvalid   = fmt.Errorf("Invalid client")
	errClientReassign  = fmt.Errorf("Ticket already belongs to another client")
	errClientNotFound  = fmt.Errorf("Client not found")
)
