// Seed populates a fresh database with a demo project: a handful of quiz
// questions, a question bank referencing them, and the containment links.
package main

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coursecraft/internal/config"
	"coursecraft/internal/model"
	"coursecraft/internal/registry"
	"coursecraft/internal/store"
	"coursecraft/internal/store/mongostore"
)

const author = "seed"

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	reg := registry.Default()
	st := store.WithMigrations(mongostore.New(client.Database(cfg.MongoDatabase)), reg)

	now := time.Now().UTC()
	project := &model.Project{
		ID:          uuid.NewString(),
		Name:        "Intro to Marine Biology",
		Description: "Demo course content for local development",
		OwnerID:     author,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := st.CreateProject(ctx, project); err != nil {
		log.Fatalf("Failed to create project: %v", err)
	}
	log.Printf("Created project %s (%s)", project.Name, project.ID)

	questions := []model.QuizQuestion{
		multipleChoice(
			"Which of these is a cetacean?",
			[]string{"Humpback whale", "Great white shark", "Giant squid", "Sea otter"},
			0,
		),
		multipleResponse(
			"Which of the following are kinds of plankton?",
			[]string{"Phytoplankton", "Zooplankton", "Kelp", "Coral"},
			[]int{0, 1},
		),
		trueFalse("The blue whale is the largest animal known to have ever existed.", true),
		trueFalse("Most of the ocean floor has been mapped in high resolution.", false),
	}

	var questionIDs []string
	for _, q := range questions {
		data, err := registry.EncodePayload(&q)
		if err != nil {
			log.Fatalf("Failed to encode question: %v", err)
		}
		a := model.NewArtifact(project.ID, model.TypeQuizQuestion, registry.QuestionVersion, author, data)
		if err := st.SaveArtifact(ctx, a); err != nil {
			log.Fatalf("Failed to save question: %v", err)
		}
		questionIDs = append(questionIDs, a.ID)
	}
	log.Printf("Created %d quiz questions", len(questionIDs))

	passing := 70
	bank := model.QuestionBank{
		Title:       "Unit 1 Review",
		Description: "Covers whales, plankton and ocean exploration",
		QuestionIDs: questionIDs,
		Settings:    model.BankSettings{PassingGrade: &passing},
	}
	bankData, err := registry.EncodePayload(&bank)
	if err != nil {
		log.Fatalf("Failed to encode bank: %v", err)
	}
	bankArtifact := model.NewArtifact(project.ID, model.TypeQuestionBank, registry.BankVersion, author, bankData)
	if err := st.SaveArtifact(ctx, bankArtifact); err != nil {
		log.Fatalf("Failed to save question bank: %v", err)
	}
	log.Printf("Created question bank %s", bankArtifact.ID)

	for _, qid := range questionIDs {
		l := &model.Link{
			ID:           uuid.NewString(),
			ProjectID:    project.ID,
			SourceID:     bankArtifact.ID,
			TargetID:     qid,
			Relationship: model.RelContains,
			CreatedBy:    author,
			CreatedAt:    time.Now().UTC(),
		}
		if err := st.SaveLink(ctx, l); err != nil {
			log.Fatalf("Failed to save link: %v", err)
		}
	}
	log.Printf("Linked bank to %d questions", len(questionIDs))
	log.Println("Seed complete")
}

func multipleChoice(prompt string, answers []string, correct int) model.QuizQuestion {
	q := model.QuizQuestion{
		QuestionForm: model.FormSingleCorrect,
		Prompt:       model.FromPlainText(prompt),
	}
	for i, text := range answers {
		q.Answers = append(q.Answers, model.Answer{
			ID:        uuid.NewString(),
			Text:      model.FromPlainText(text),
			IsCorrect: i == correct,
		})
	}
	return q
}

func multipleResponse(prompt string, answers []string, correct []int) model.QuizQuestion {
	q := model.QuizQuestion{
		QuestionForm: model.FormMultiCorrect,
		Prompt:       model.FromPlainText(prompt),
	}
	correctSet := make(map[int]bool, len(correct))
	for _, i := range correct {
		correctSet[i] = true
	}
	for i, text := range answers {
		q.Answers = append(q.Answers, model.Answer{
			ID:        uuid.NewString(),
			Text:      model.FromPlainText(text),
			IsCorrect: correctSet[i],
		})
	}
	return q
}

func trueFalse(prompt string, answer bool) model.QuizQuestion {
	return model.QuizQuestion{
		QuestionForm: model.FormTrueFalse,
		Prompt:       model.FromPlainText(prompt),
		Answers: []model.Answer{
			{ID: uuid.NewString(), Text: model.FromPlainText("True"), IsCorrect: answer},
			{ID: uuid.NewString(), Text: model.FromPlainText("False"), IsCorrect: !answer},
		},
	}
}
