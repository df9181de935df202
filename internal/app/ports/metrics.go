package ports

type ActionMetrics interface {
	RecordSuccess(action string)
	RecordRejected(reason string)
	RecordConflict()
	RecordFailure()
	RecordEvents(events []EventRecord)
}
