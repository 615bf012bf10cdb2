package models

// ToastSeverity matches the notification severities the UI understands.
type ToastSeverity string

const (
	ToastError   ToastSeverity = "error"
	ToastInfo    ToastSeverity = "info"
	ToastSuccess ToastSeverity = "success"
)

// Toast is a user-facing notification. Every failure or confirmation path
// surfaces exactly one of these; raw errors never reach the UI.
type Toast struct {
	Severity ToastSeverity `json:"severity"`
	Summary  string        `json:"summary"`
	Detail   string        `json:"detail"`
}

func ErrorToast(detail string) Toast {
	return Toast{Severity: ToastError, Summary: "Error", Detail: detail}
}

func InfoToast(summary, detail string) Toast {
	return Toast{Severity: ToastInfo, Summary: summary, Detail: detail}
}

func SuccessToast(detail string) Toast {
	return Toast{Severity: ToastSuccess, Summary: "Success", Detail: detail}
}
