package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dccampos/secretaria/core/enrollment"
	sqlxrepos "github.com/dccampos/secretaria/storage/database/sqlx"
)

var seedNames = [...][2]string{
	{"Ana", "Souza"},
	{"Bruno", "Lima"},
	{"Carla", "Pereira"},
	{"Diego", "Alves"},
	{"Elisa", "Martins"},
}

// seed inserts demo pending applications so the review screens have
// something to show locally.
func (cli *commandLine) seed(count int) error {
	repo := sqlxrepos.NewEnrollmentRepository(cli.db)
	ctx := context.Background()

	for i := 0; i < count; i++ {
		name := seedNames[i%len(seedNames)]
		app := enrollment.Application{
			ID:             uuid.New().String(),
			FirstName:      name[0],
			LastName:       name[1],
			Email:          fmt.Sprintf("%s.%s+%d@example.com", name[0], name[1], i),
			Phone:          "11999990000",
			BirthDate:      "2004-03-15",
			Document:       fmt.Sprintf("%011d", 10000000000+i),
			ZipCode:        "01310-100",
			Street:         "Avenida Paulista",
			Number:         fmt.Sprintf("%d", 100+i),
			District:       "Bela Vista",
			City:           "São Paulo",
			State:          "sp",
			EducationLevel: "high school",
			Status:         enrollment.StatusPending,
			CreatedAt:      time.Now().UTC(),
		}
		if _, err := repo.CreateApplication(ctx, app); err != nil {
			return err
		}
		fmt.Printf("seeded application %s (%s %s)\n", app.ID, app.FirstName, app.LastName)
	}
	return nil
}
