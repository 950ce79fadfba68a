package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stemsi/academic-portal/internal/flatfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const profileCSV = `Student Unique Enrolment ID,Name of the student,Gender,DayScholar/Hostler,Contact No,Postel Address,Name of the Mentor,Designation,Mentor Contact No
2400030001,Asha Rao,Female,Hostler,9000000001,"House 12, Sector 15",Ashesh K,Associate Professor,8500103040
 2400030002 ,Ravi Kumar,Male,DayScholar,9000000002,Vijayawada,Ashesh K,Associate Professor,8500103040
`

func TestStudentRepository_GetByID(t *testing.T) {
	repo := NewStudentRepository(writeFile(t, "profile.csv", profileCSV))
	ctx := context.Background()

	s, err := repo.GetByID(ctx, "2400030001")
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", s.Name)
	assert.Equal(t, "Hostler", s.Category)
	assert.Equal(t, "House 12, Sector 15", s.Address)
	assert.Equal(t, "Associate Professor", s.CounsellorDesignation)
	assert.Equal(t, "8500103040", s.CounsellorContact)

	s, err = repo.GetByID(ctx, "2400030002")
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", s.Name)

	_, err = repo.GetByID(ctx, "2400039999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStudentRepository_MissingFile(t *testing.T) {
	repo := NewStudentRepository(filepath.Join(t.TempDir(), "missing.csv"))

	_, err := repo.GetByID(context.Background(), "1")
	assert.ErrorIs(t, err, flatfile.ErrFileNotFound)
	assert.ErrorIs(t, repo.Check(context.Background()), flatfile.ErrFileNotFound)
}

func TestAttendanceRepository_ListByStudent(t *testing.T) {
	csv := "student_uni_id,coursecode,attendance,,,\n" +
		"2400030001,24CS2101,87,,,\n" +
		"2400030002,24CS2101,60,\n" +
		"2400030001,24MT2012,74.9,,\n" +
		"2400030001,24SDCS01,absent\n" +
		",,,\n"
	repo := NewAttendanceRepository(writeFile(t, "attendance.csv", csv))

	records, err := repo.ListByStudent(context.Background(), "2400030001")
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "24CS2101", records[0].CourseCode)
	assert.Equal(t, 87, records[0].Attendance)
	assert.Equal(t, 74, records[1].Attendance)
	assert.Equal(t, 0, records[2].Attendance)

	none, err := repo.ListByStudent(context.Background(), "missing")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestParsePercent(t *testing.T) {
	tests := map[string]int{
		"87":    87,
		"99.99": 99,
		"92.9":  92,
		"85%":   85,
		" 74 ":  74,
		"+60":   60,
		"0":     0,
		"":      0,
		"N/A":   0,
		"-3.5":  0,
		"NaN":   0,
		"Inf":   0,
		"-Inf":  0,
		"1e30":  1,
		"150":   100,

		"99999999999999999999999":  100,
		"-99999999999999999999999": 0,
	}
	for in, want := range tests {
		assert.Equal(t, want, parsePercent(in), in)
	}
}

func TestResultRepository_ListByStudent(t *testing.T) {
	csv := "ID,SEMESTER,CC,CD,GRADE,STATUS\n" +
		"2400030001,2,24CS2202,COMPUTER NETWORKS,A,P\n" +
		"2400030001,1,23LE1001,COMPUTATIONAL THINKING,O,P\n" +
		"2400030002,1,23LE1001,COMPUTATIONAL THINKING,F,F\n"
	repo := NewResultRepository(writeFile(t, "results.csv", csv))

	rows, err := repo.ListByStudent(context.Background(), "2400030001")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2", rows[0].Semester)
	assert.Equal(t, "COMPUTER NETWORKS", rows[0].Course.Name)
	assert.Equal(t, "24CS2202", rows[0].Course.CourseCode)
	assert.Equal(t, "O", rows[1].Course.Grade)
	assert.Equal(t, "P", rows[1].Course.Status)
}

func TestCGPARepository_GetByStudent(t *testing.T) {
	repo := NewCGPARepository(writeFile(t, "cgpa.csv", "Student ID,CGPA\n2400030001,8.91\n"))

	v, err := repo.GetByStudent(context.Background(), "2400030001")
	require.NoError(t, err)
	assert.Equal(t, "8.91", v)

	_, err = repo.GetByStudent(context.Background(), "2400030002")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCredentialRepository_ListByID(t *testing.T) {
	repo := NewCredentialRepository(writeFile(t, "login.csv", "ID,Password\nfaculty1,secret\nfaculty1,other\nfaculty2,pw\n"))

	creds, err := repo.ListByID(context.Background(), "faculty1")
	require.NoError(t, err)
	require.Len(t, creds, 2)
	assert.Equal(t, "secret", creds[0].Password)
	assert.Equal(t, "other", creds[1].Password)

	creds, err = repo.ListByID(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, creds)
}

func TestCredentialRepository_PasswordKeepsSpaces(t *testing.T) {
	repo := NewCredentialRepository(writeFile(t, "login.csv", "ID,Password\n u1 , pw \n"))

	creds, err := repo.ListByID(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, creds, 1)
	assert.Equal(t, " pw ", creds[0].Password)
}
