package domain

const (
	RoleGateway = "GATEWAY"
	RoleAdmin   = "ADMIN"
	RoleUser    = "USER"
)

const (
	NotificationTypeMatch = "MATCH"
)

const (
	ReportStatusPending  = "PENDING"
	ReportStatusReviewed = "REVIEWED"
)

// AgeRange is an inclusive age bound; nil ends are open.
type AgeRange struct {
	Min *int
	Max *int
}

// AgePresets are the ranges offered by the browse preferences menu.
var AgePresets = map[string]AgeRange{
	"all":   {},
	"18-25": {Min: intPtr(18), Max: intPtr(25)},
	"26-30": {Min: intPtr(26), Max: intPtr(30)},
	"31+":   {Min: intPtr(31)},
}

func intPtr(v int) *int { return &v }
