package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/wachplan-dev/wachplan/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var commonFirstNames = []string{
	"Lukas", "Jonas", "Finn", "Leon", "Paul", "Max", "Felix", "Tim", "Jan", "Nico",
	"Anna", "Lena", "Marie", "Laura", "Julia", "Sophie", "Lisa", "Sarah", "Mia", "Emma",
}
var commonLastNames = []string{
	"Müller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer", "Wagner", "Becker",
	"Schulz", "Hoffmann", "Koch", "Bauer", "Richter", "Klein", "Wolf", "Neumann",
}
var commonRanks = []string{
	"FM", "OFM", "HFM", "LM", "OLM", "HLM", "BM", "OBM",
}
var commonTags = []string{
	"AGT", "Maschinist", "Gruppenführer", "Sanitäter", "Bootsführer", "Kettensäge",
}

func GenerateRandomPersonName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	last := commonLastNames[rand.Intn(len(commonLastNames))]
	return first + " " + last
}

func GenerateRandomRank() string {
	return commonRanks[rand.Intn(len(commonRanks))]
}

// GenerateRandomTags draws a random non-empty subset of the known
// qualification markers.
func GenerateRandomTags() []string {
	tags := append([]string{}, commonTags...)

	for i := len(tags) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		tags[i], tags[j] = tags[j], tags[i]
	}

	n := rand.Intn(3) + 1
	return tags[:n]
}

func GenerateRandomPerson() *domain.Person {
	rank := GenerateRandomRank()
	return &domain.Person{
		Name:   GenerateRandomPersonName(),
		Rank:   &rank,
		Tags:   GenerateRandomTags(),
		Active: true,
	}
}

var digits = "0123456789"

func GenerateEmailFromName(name string, emailDomainName string) string {
	local := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	replacer := strings.NewReplacer("ä", "ae", "ö", "oe", "ü", "ue", "ß", "ss")
	local = replacer.Replace(local)

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		local += string(digits[rand.Intn(len(digits))])
	}

	return local + "@" + emailDomainName
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	name := GenerateRandomPersonName()
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        GenerateEmailFromName(name, emailDomainName),
		PasswordHash: string(passwordHash),
	}

	return user, nil
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}
