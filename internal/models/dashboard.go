package models

// DayLoad is the number of teaching hours on one weekday.
type DayLoad struct {
	Name  string `json:"name"`
	Hours int    `json:"heures"`
}

// TeacherDashboard aggregates a teacher's timetable and wish progress.
type TeacherDashboard struct {
	NextSession      *SessionDetail  `json:"nextSession"`
	WeeklyStats      []DayLoad       `json:"weeklyStats"`
	UpcomingSessions []SessionDetail `json:"upcomingSessions"`
	Classes          []Class         `json:"classes"`
	WishProgress     int             `json:"desidProgress"`
	TotalHours       int             `json:"totalHours"`
	WishesCount      int             `json:"wishesCount"`
}

// StudentDashboard shows the next class session and latest course material.
type StudentDashboard struct {
	NextSession     *SessionDetail   `json:"nextSession"`
	RecentResources []ResourceDetail `json:"recentResources"`
}

// AdminStats are the headline counters of the admin portal.
type AdminStats struct {
	Rooms         int `db:"rooms" json:"countSalles"`
	Teachers      int `db:"teachers" json:"countTeachers"`
	Classes       int `db:"classes" json:"countClasses"`
	Wishes        int `db:"wishes" json:"countVoeux"`
	TotalCapacity int `db:"total_capacity" json:"capaciteTotale"`
}

// TeacherFormData is what the scheduling form needs to render its pickers.
type TeacherFormData struct {
	TeachingUnits []TeachingUnit `json:"ues"`
	Rooms         []Room         `json:"salles"`
	Classes       []Class        `json:"classes"`
}
