package metrics

// Metric names
const (
	MetricNameRoundsTotal          = "cardroyale_rounds_total"
	MetricNameChipsWagered         = "cardroyale_chips_wagered_total"
	MetricNameChipsPaid            = "cardroyale_chips_paid_total"
	MetricNameBetsRejected         = "cardroyale_bets_rejected_total"
	MetricNameAchievementsUnlocked = "cardroyale_achievements_unlocked_total"
	MetricNameLevelUps             = "cardroyale_level_ups_total"
	MetricNameChipsGranted         = "cardroyale_chips_granted_total"
	MetricNamePersistFailures      = "cardroyale_ledger_persist_failures_total"
	MetricNameSessionsActive       = "cardroyale_sessions_cached"
)

// Metric help text
const (
	HelpTextRoundsTotal          = "Total number of settled rounds"
	HelpTextChipsWagered         = "Total chips debited as bets"
	HelpTextChipsPaid            = "Total chips credited as payouts"
	HelpTextBetsRejected         = "Total bets refused before any state change"
	HelpTextAchievementsUnlocked = "Total achievements unlocked"
	HelpTextLevelUps             = "Total level increments"
	HelpTextChipsGranted         = "Total chips granted from the chip store"
	HelpTextPersistFailures      = "Total ledger snapshot writes that failed"
	HelpTextSessionsActive       = "Sessions currently held by the session manager"
)

// Label names
const (
	LabelGame        = "game"
	LabelOutcome     = "outcome"
	LabelReason      = "reason"
	LabelAchievement = "achievement"
	LabelSource      = "source"
)
