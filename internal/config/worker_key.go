package config

// WorkerKeyStruct names the Redis lists shared by the API and the
// attendance worker.
type WorkerKeyStruct struct {
	// AttendanceQueue holds pending bulk attendance jobs as JSON.
	AttendanceQueue string
	// AttendanceDeadLetter holds jobs that kept failing after retries.
	AttendanceDeadLetter string
}

var WorkerKey = &WorkerKeyStruct{
	AttendanceQueue:      "attendance:queue",
	AttendanceDeadLetter: "attendance:dead",
}
