package dummydb

import (
	"sync"

	"github.com/AxelGHMM/CACE/core/assignment"
	"github.com/AxelGHMM/CACE/core/attendance"
	"github.com/AxelGHMM/CACE/core/grade"
	"github.com/AxelGHMM/CACE/core/group"
	"github.com/AxelGHMM/CACE/core/student"
	"github.com/AxelGHMM/CACE/core/subject"
	"github.com/AxelGHMM/CACE/core/user"
)

type (
	DB struct {
		user       *userTable
		group      *groupTable
		subject    *subjectTable
		assignment *assignmentTable
		student    *studentTable
		attendance *attendanceTable
		grade      *gradeTable
	}

	userTable struct {
		sync.RWMutex
		pk    int
		table map[int]*user.User
	}

	groupTable struct {
		sync.RWMutex
		pk    int
		table map[int]*group.Group
	}

	subjectTable struct {
		sync.RWMutex
		pk    int
		table map[int]*subject.Subject
	}

	assignmentTable struct {
		sync.RWMutex
		pk    int
		table map[int]*assignment.Assignment
	}

	studentTable struct {
		sync.RWMutex
		pk    int
		table map[int]*student.Student
	}

	attendanceTable struct {
		sync.RWMutex
		pk    int
		table map[int]*attendance.Attendance
	}

	gradeTable struct {
		sync.RWMutex
		pk    int
		table map[int]*grade.Grade
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[int]*user.User)},
		group:      &groupTable{table: make(map[int]*group.Group)},
		subject:    &subjectTable{table: make(map[int]*subject.Subject)},
		assignment: &assignmentTable{table: make(map[int]*assignment.Assignment)},
		student:    &studentTable{table: make(map[int]*student.Student)},
		attendance: &attendanceTable{table: make(map[int]*attendance.Attendance)},
		grade:      &gradeTable{table: make(map[int]*grade.Grade)},
	}
	return db, nil
}
