package main

import (
	"context"

	"github.com/trezcool/darasa/core/school"
)

// seed loads a small demo dataset for local development. It is not
// idempotent; run it against a fresh database.
func (cli *commandLine) seed() error {
	ctx := context.Background()

	teachers := []school.NewTeacher{
		{
			Firstname:     "Grace",
			Lastname:      "Otieno",
			PersonalEmail: "grace.otieno@example.com",
			Email:         "otieno.grace@lecturer.goldworth.com",
			Password:      "changeme",
			Expertise:     "software",
			Department:    "IT",
		},
		{
			Firstname:     "Daniel",
			Lastname:      "Mwangi",
			PersonalEmail: "daniel.mwangi@example.com",
			Email:         "mwangi.daniel@lecturer.goldworth.com",
			Password:      "changeme",
			Expertise:     "networking",
			Department:    "Networking",
		},
	}
	teacherIDs := make([]int, 0, len(teachers))
	for _, nt := range teachers {
		t, err := cli.schoolSvc.CreateTeacher(ctx, nt)
		if err != nil {
			return err
		}
		teacherIDs = append(teacherIDs, t.ID)
	}

	p, err := cli.schoolSvc.CreateParent(ctx, school.NewParent{
		Firstname: "Miriam",
		Lastname:  "Kariuki",
		Email:     "kariuki.miriam@parent.goldworth.com",
		Password:  "changeme",
	})
	if err != nil {
		return err
	}

	students := []school.NewStudent{
		{
			Firstname:     "Brian",
			Lastname:      "Kariuki",
			PersonalEmail: "brian.kariuki@example.com",
			Email:         "kariuki.brian@student.goldworth.com",
			Password:      "changeme",
			ParentID:      &p.ID,
		},
		{
			Firstname:     "Alice",
			Lastname:      "Njeri",
			PersonalEmail: "alice.njeri@example.com",
			Email:         "njeri.alice@student.goldworth.com",
			Password:      "changeme",
		},
	}
	studentIDs := make([]int, 0, len(students))
	for _, ns := range students {
		s, err := cli.schoolSvc.CreateStudent(ctx, ns)
		if err != nil {
			return err
		}
		studentIDs = append(studentIDs, s.ID)
	}

	courses := []school.NewCourse{
		{
			Name:        "Introduction to Python",
			Description: "Variables, control flow and functions.",
			DaysOfWeek:  "1,3",
			StartRecur:  "2026-01-05",
			EndRecur:    "2026-04-24",
			StartTime:   "09:00",
			EndTime:     "10:30",
		},
		{
			Name:        "Computer Networks",
			Description: "Layered protocols from the wire up.",
			DaysOfWeek:  "2,4",
			StartRecur:  "2026-01-06",
			EndRecur:    "2026-04-23",
			StartTime:   "14:00",
			EndTime:     "15:30",
		},
	}
	for i, nc := range courses {
		c, err := cli.schoolSvc.CreateCourse(ctx, nc)
		if err != nil {
			return err
		}
		if err = cli.schoolSvc.AssignTeacher(ctx, c.ID, teacherIDs[i%len(teacherIDs)]); err != nil {
			return err
		}
		for _, sid := range studentIDs {
			if err = cli.schoolSvc.EnrollStudent(ctx, c.ID, sid); err != nil {
				return err
			}
		}
		if i == 0 {
			if _, err = cli.schoolSvc.CreateAssignment(ctx, school.NewAssignment{
				Name:      "Python basics",
				Topic:     "Python",
				Body:      "Write a program printing the first 20 Fibonacci numbers.",
				DueDate:   "2026-02-01",
				CourseID:  &c.ID,
				TeacherID: &teacherIDs[0],
			}); err != nil {
				return err
			}
			if _, err = cli.schoolSvc.CreateEvent(ctx, school.NewEvent{
				Start:      "2026-01-05",
				DaysOfWeek: nc.DaysOfWeek,
				StartTime:  nc.StartTime,
				EndTime:    nc.EndTime,
				StartRecur: nc.StartRecur,
				EndRecur:   nc.EndRecur,
				CourseID:   &c.ID,
				StudentID:  &studentIDs[0],
			}); err != nil {
				return err
			}
		}
	}

	return nil
}
