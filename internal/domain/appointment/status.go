package appointment

import "github.com/BruksfildServices01/barber-agenda/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

// Status terminais nunca mudam depois de atingidos
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

func InitialStatus() Status {
	return StatusScheduled
}

// NonTerminal é o conjunto usado nas consultas de conflito e varredura
func NonTerminal() []string {
	return []string{
		string(StatusScheduled),
		string(StatusConfirmed),
		string(StatusInProgress),
	}
}

// ===============================
// Transições
// ===============================

var transitions = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled, StatusNoShow},
}

func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ===============================
// Guards por operação
// ===============================

func CanConfirm(current Status) error {
	if !CanTransition(current, StatusConfirmed) {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func CanStart(current Status) error {
	if !CanTransition(current, StatusInProgress) {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanComplete: o caminho normal exige in_progress; fastPath (política
// configurável) permite concluir direto de scheduled/confirmed
func CanComplete(current Status, fastPath bool) error {
	if CanTransition(current, StatusCompleted) {
		return nil
	}
	if fastPath && (current == StatusScheduled || current == StatusConfirmed) {
		return nil
	}
	return httperr.ErrBusiness(httperr.CodeInvalidState)
}

func CanCancel(current Status) error {
	if !CanTransition(current, StatusCancelled) {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanMarkNoShow: transição exclusiva do sistema (varredura)
func CanMarkNoShow(current Status) error {
	if !CanTransition(current, StatusNoShow) {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}
