package domain

type PhaseStatus string

const (
	PhaseNotStarted PhaseStatus = "not_started"
	PhaseInProgress PhaseStatus = "in_progress"
	PhaseCompleted  PhaseStatus = "completed"
)

// ValidPhaseStatuses is the closed set of accepted phase status strings.
var ValidPhaseStatuses = map[PhaseStatus]bool{
	PhaseNotStarted: true,
	PhaseInProgress: true,
	PhaseCompleted:  true,
}

type WorkPackageStatus string

const (
	WorkPackageActive   WorkPackageStatus = "active"
	WorkPackageArchived WorkPackageStatus = "archived"
)

type ContactStage string

const (
	StageLead      ContactStage = "lead"
	StageQualified ContactStage = "qualified"
	StageProposal  ContactStage = "proposal"
	StageClient    ContactStage = "client"
	StageDormant   ContactStage = "dormant"
)

// ValidContactStages is the closed set of accepted pipeline stage strings.
var ValidContactStages = map[ContactStage]bool{
	StageLead: true, StageQualified: true, StageProposal: true,
	StageClient: true, StageDormant: true,
}

type ScheduleHealth string

const (
	HealthOnTrack ScheduleHealth = "on_track"
	HealthAtRisk  ScheduleHealth = "at_risk"
	HealthBehind  ScheduleHealth = "behind"
)
