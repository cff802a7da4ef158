package calendar

// Cycle describes a menstrual cycle grid. Day numbers are 1-based and the
// fertile window is inclusive.
type Cycle struct {
	Length       int
	PeriodDays   int
	FertileStart int
	FertileEnd   int
}

var DefaultCycle = Cycle{Length: 28, PeriodDays: 5, FertileStart: 13, FertileEnd: 17}

type CycleStatus struct {
	Day     int
	Period  bool
	Fertile bool
	Current bool
}

func (c Cycle) ClassifyCycle(day, cycleDay int) CycleStatus {
	return CycleStatus{
		Day:     day,
		Period:  day >= 1 && day <= c.PeriodDays,
		Fertile: day >= c.FertileStart && day <= c.FertileEnd,
		Current: day == cycleDay,
	}
}

func (c Cycle) Grid(cycleDay int) []CycleStatus {
	grid := make([]CycleStatus, 0, c.Length)
	for day := 1; day <= c.Length; day++ {
		grid = append(grid, c.ClassifyCycle(day, cycleDay))
	}
	return grid
}
