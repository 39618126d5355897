package database

// RentalAction is one actionable transition from a rental status. Every
// status exposes exactly one main action; alt actions are optional.
type RentalAction struct {
	Label  string
	Target string
}

// RentalActionConfig groups the actions available from one status
type RentalActionConfig struct {
	Main RentalAction
	Alts []RentalAction
}

// rentalTransitions is the full status transition table. A transition is
// legal only if it appears here as the main or an alt action of the
// rental's current status.
var rentalTransitions = map[string]RentalActionConfig{
	RentalStatusIncoming: {
		Main: RentalAction{Label: "Забронировать", Target: RentalStatusBooked},
		Alts: []RentalAction{
			{Label: "Отменить", Target: RentalStatusCancelled},
		},
	},
	RentalStatusBooked: {
		Main: RentalAction{Label: "Начать аренду", Target: RentalStatusRented},
		Alts: []RentalAction{
			{Label: "Отменить", Target: RentalStatusCancelled},
		},
	},
	RentalStatusRented: {
		Main: RentalAction{Label: "Завершить аренду", Target: RentalStatusCompleted},
		Alts: []RentalAction{
			{Label: "Просрочено", Target: RentalStatusOverdue},
			{Label: "ЧП (Авария/Угон)", Target: RentalStatusEmergency},
		},
	},
	RentalStatusOverdue: {
		Main: RentalAction{Label: "Завершить аренду", Target: RentalStatusCompleted},
		Alts: []RentalAction{
			{Label: "ЧП (Авария/Угон)", Target: RentalStatusEmergency},
			{Label: "В архив", Target: RentalStatusArchive},
		},
	},
	RentalStatusEmergency: {
		Main: RentalAction{Label: "Завершить аренду", Target: RentalStatusCompleted},
		Alts: []RentalAction{
			{Label: "В архив", Target: RentalStatusArchive},
		},
	},
	RentalStatusCompleted: {
		Main: RentalAction{Label: "В архив", Target: RentalStatusArchive},
	},
	RentalStatusCancelled: {
		Main: RentalAction{Label: "Вернуть в работу", Target: RentalStatusIncoming},
		Alts: []RentalAction{
			{Label: "В архив", Target: RentalStatusArchive},
		},
	},
	RentalStatusArchive: {
		Main: RentalAction{Label: "Восстановить", Target: RentalStatusIncoming},
	},
}

// RentalActionsFor returns the actions available from a status. The second
// return is false for unknown statuses.
func RentalActionsFor(status string) (RentalActionConfig, bool) {
	cfg, ok := rentalTransitions[status]
	return cfg, ok
}

// CanTransition reports whether moving from one status to another is legal
func CanTransition(from, to string) bool {
	cfg, ok := rentalTransitions[from]
	if !ok {
		return false
	}
	if cfg.Main.Target == to {
		return true
	}
	for _, alt := range cfg.Alts {
		if alt.Target == to {
			return true
		}
	}
	return false
}

// RentalStatusLabel returns the display label of a rental status
func RentalStatusLabel(status string) string {
	switch status {
	case RentalStatusIncoming:
		return "Входящая"
	case RentalStatusBooked:
		return "Забронировано"
	case RentalStatusRented:
		return "В аренде"
	case RentalStatusCompleted:
		return "Завершено"
	case RentalStatusOverdue:
		return "Просрочено"
	case RentalStatusEmergency:
		return "ЧП"
	case RentalStatusCancelled:
		return "Отменено"
	case RentalStatusArchive:
		return "Архив"
	default:
		return status
	}
}
