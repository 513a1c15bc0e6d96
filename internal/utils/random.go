package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/careernest-dev/careernest/backend/internal/domain"
)

var firstNames = []string{
	"Aarav", "Ananya", "Arjun", "Diya", "Ishaan", "Kavya", "Rahul", "Priya",
	"Alice", "Bob", "Carol", "David", "Emma", "Frank", "Grace", "Henry",
	"Meera", "Nikhil", "Pooja", "Rohan", "Sneha", "Tanvi", "Vikram", "Zara",
}

var lastNames = []string{
	"Sharma", "Patel", "Singh", "Kumar", "Gupta", "Verma", "Reddy", "Iyer",
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
}

var companies = []string{
	"Tech Innovators", "DataWiz", "BrandBoost", "CloudNine Systems", "PixelForge",
	"GreenLeaf Analytics", "Quantum Labs", "BrightPath Solutions", "NovaSoft", "UrbanStack",
}

var locations = []string{
	"Bangalore", "Delhi", "Mumbai", "Hyderabad", "Pune", "Chennai", "Remote",
}

var jobTitles = []string{
	"Frontend Developer", "Backend Developer", "Data Analyst", "DevOps Engineer",
	"QA Engineer", "Product Designer", "Marketing Associate", "Business Analyst",
}

func GenerateRandomName() string {
	return firstNames[rand.Intn(len(firstNames))] + " " + lastNames[rand.Intn(len(lastNames))]
}

func emailFromName(name string) string {
	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	return fmt.Sprintf("%s%d@example.com", local, rand.Intn(1000))
}

func GenerateRandomUser(role domain.Role, password string) (*domain.User, error) {
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	name := GenerateRandomName()
	user := &domain.User{
		Name:         name,
		Email:        emailFromName(name),
		PasswordHash: string(passwordHash),
		Role:         role,
		Phone:        fmt.Sprintf("+91 9%09d", rand.Intn(1000000000)),
		Location:     locations[rand.Intn(len(locations))],
	}

	switch role {
	case domain.RoleStudent:
		user.EducationLevel = "Bachelor's"
		user.FieldOfStudy = "Computer Science"
		user.GraduationYear = fmt.Sprintf("%d", 2024+rand.Intn(4))
		user.Skills = "Go, SQL, JavaScript"
	case domain.RoleRecruiter:
		user.CompanyName = companies[rand.Intn(len(companies))]
		user.CompanyWebsite = "https://example.com"
	}

	return user, nil
}

func GenerateRandomPosting(postedBy string, company string) *domain.Posting {
	kind := domain.PostingKindJob
	if rand.Intn(2) == 0 {
		kind = domain.PostingKindInternship
	}

	title := jobTitles[rand.Intn(len(jobTitles))]
	posting := &domain.Posting{
		Kind:        kind,
		Title:       title,
		Company:     company,
		Location:    locations[rand.Intn(len(locations))],
		Description: fmt.Sprintf("We are looking for a %s to join our team.", title),
		PostedBy:    postedBy,
	}

	if kind == domain.PostingKindInternship {
		posting.Title = title + " Intern"
		posting.Stipend = fmt.Sprintf("₹%d,000/month", 5+rand.Intn(20))
		posting.Duration = fmt.Sprintf("%d months", 2+rand.Intn(5))
	} else {
		posting.Salary = fmt.Sprintf("₹%d LPA", 4+rand.Intn(20))
	}

	return posting
}

func GenerateRandomApplication(student *domain.User, posting *domain.Posting) *domain.Application {
	return &domain.Application{
		PostingID:      posting.ID,
		PostingKind:    posting.Kind,
		ApplicantEmail: student.Email,
		ApplicantName:  student.Name,
		Phone:          student.Phone,
		CoverLetter:    fmt.Sprintf("I am excited to apply for %s at %s.", posting.Title, posting.Company),
		ResumeURL:      student.ResumeURL,
		CompanyName:    posting.Company,
		CompanyLogo:    posting.CompanyLogo,
	}
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}
