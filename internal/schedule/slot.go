package schedule

// Slot is one weekly recurring time window of a class as the scheduler sees
// it. Day, Start and End keep the stored text; they are parsed on use.
type Slot struct {
	ID        int
	ClassID   int
	ClassName string
	Day       string
	Start     string
	End       string
	Professor *string
	Capacity  *int
}
