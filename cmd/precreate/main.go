// Command precreate registers a batch of email addresses as pre-created
// users and emits one "email,license_key" line per account. The keys are
// shown exactly once; only their hashes are stored.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/cwngan/cu2m-backend/internal/managers"
	"github.com/cwngan/cu2m-backend/internal/repositories"
	"github.com/cwngan/cu2m-backend/internal/utils"
)

func main() {
	inputPath := flag.String("input", "new_users.txt", "file with one email address per line")
	outputPath := flag.String("output", "new_users_pre.txt", "file the email,license_key pairs are appended to")
	sendMail := flag.Bool("send", false, "mail each license key to its address")
	flag.Parse()

	if err := godotenv.Load(".env"); err != nil {
		log.Info("No .env file found, using environment variables from system")
	}

	emails, err := readEmails(*inputPath)
	if err != nil {
		log.Fatal("error reading input file: ", err)
	}

	pool, err := connect()
	if err != nil {
		log.Fatal("error connecting to database: ", err)
	}
	defer pool.Close()

	output, err := os.OpenFile(*outputPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		log.Fatal("error opening output file: ", err)
	}
	defer output.Close()

	userRepo := repositories.NewUserRepository(pool)
	var mailMgr managers.MailMgr
	if *sendMail {
		mailMgr = managers.NewMailManager()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	created := 0
	for _, email := range emails {
		licenseKey, keyHash, err := utils.GenerateKey()
		if err != nil {
			log.Fatal("error generating license key: ", err)
		}

		if _, err := userRepo.CreatePreCreated(ctx, email, keyHash); err != nil {
			log.WithField("email", email).Error("Error creating user: ", err)
			continue
		}

		if _, err := fmt.Fprintf(output, "%s,%s\n", email, licenseKey); err != nil {
			log.Fatal("error writing output file: ", err)
		}

		if mailMgr != nil {
			if err := mailMgr.SendLicenseKeyMail(email, licenseKey); err != nil {
				log.WithField("email", email).Error("Error sending license key mail: ", err)
			}
		}
		created++
	}

	log.Infof("Pre-created %d of %d users", created, len(emails))
}

func readEmails(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	emails := make([]string, 0)
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		email := strings.TrimSpace(scanner.Text())
		if email != "" {
			emails = append(emails, email)
		}
	}
	return emails, scanner.Err()
}

func connect() (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_USER"),
		os.Getenv("DB_PASS"), os.Getenv("DB_NAME"))
	return pgxpool.New(context.Background(), dsn)
}
