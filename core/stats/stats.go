package stats

import "context"

type (
	// RoleCount is one row of the users-per-role aggregate.
	RoleCount struct {
		Role  string `db:"role"`
		Count int    `db:"count"`
	}

	// MonthCount is one row of the attendances-per-month aggregate.
	MonthCount struct {
		Month int `db:"month"`
		Count int `db:"count"`
	}

	// AdminStats feeds the admin dashboard charts. UsersByRole is the
	// fixed triple [admins, professors, students].
	AdminStats struct {
		TotalUsers      int   `json:"totalUsers"`
		TotalSubjects   int   `json:"totalSubjects"`
		TotalGroups     int   `json:"totalGroups"`
		UsersByRole     []int `json:"usersByRole"`
		SubjectsByGroup []int `json:"subjectsByGroup"`
	}

	// ChartStats feeds the professor homepage charts. AttendanceData is a
	// fixed 5-slot array of monthly attendance counts; GradesData is the
	// student count per group, ordered by group id.
	ChartStats struct {
		AttendanceData []int `json:"attendanceData"`
		GradesData     []int `json:"gradesData"`
	}

	Repository interface {
		CountUsers(ctx context.Context) (int, error)
		CountSubjects(ctx context.Context) (int, error)
		CountGroups(ctx context.Context) (int, error)
		QueryUsersByRole(ctx context.Context) ([]RoleCount, error)
		// QuerySubjectsPerGroup counts assigned subjects per group, ordered
		// by group id; groups without assignments count zero.
		QuerySubjectsPerGroup(ctx context.Context) ([]int, error)
		QueryMonthlyAttendance(ctx context.Context) ([]MonthCount, error)
		// QueryStudentsPerGroup counts active students per group, ordered
		// by group id.
		QueryStudentsPerGroup(ctx context.Context) ([]int, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AdminHomepage aggregates the admin dashboard figures.
func (svc *Service) AdminHomepage(ctx context.Context) (AdminStats, error) {
	var s AdminStats
	var err error

	if s.TotalUsers, err = svc.repo.CountUsers(ctx); err != nil {
		return s, err
	}
	if s.TotalSubjects, err = svc.repo.CountSubjects(ctx); err != nil {
		return s, err
	}
	if s.TotalGroups, err = svc.repo.CountGroups(ctx); err != nil {
		return s, err
	}

	roleCounts, err := svc.repo.QueryUsersByRole(ctx)
	if err != nil {
		return s, err
	}
	roles := map[string]int{"admin": 0, "professor": 0, "student": 0}
	for _, rc := range roleCounts {
		if _, ok := roles[rc.Role]; ok {
			roles[rc.Role] = rc.Count
		}
	}
	s.UsersByRole = []int{roles["admin"], roles["professor"], roles["student"]}

	if s.SubjectsByGroup, err = svc.repo.QuerySubjectsPerGroup(ctx); err != nil {
		return s, err
	}
	if s.SubjectsByGroup == nil {
		s.SubjectsByGroup = []int{}
	}
	return s, nil
}

// ProfessorHomepage aggregates the professor homepage chart figures.
func (svc *Service) ProfessorHomepage(ctx context.Context) (ChartStats, error) {
	s := ChartStats{AttendanceData: make([]int, 5)}

	monthCounts, err := svc.repo.QueryMonthlyAttendance(ctx)
	if err != nil {
		return s, err
	}
	for _, mc := range monthCounts {
		if idx := mc.Month - 1; idx >= 0 && idx < len(s.AttendanceData) {
			s.AttendanceData[idx] = mc.Count
		}
	}

	if s.GradesData, err = svc.repo.QueryStudentsPerGroup(ctx); err != nil {
		return s, err
	}
	if s.GradesData == nil {
		s.GradesData = []int{}
	}
	return s, nil
}
