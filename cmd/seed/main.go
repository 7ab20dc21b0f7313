package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/quizforge/quizforge-backend/internal/config"
	"github.com/quizforge/quizforge-backend/internal/database"
	"github.com/quizforge/quizforge-backend/internal/logger"
	"github.com/quizforge/quizforge-backend/internal/model"
	"github.com/quizforge/quizforge-backend/internal/repository"
)

type seedQuestion struct {
	qtype   model.QuestionType
	content string
	options []string
	answer  string
}

type seedExercise struct {
	title       string
	description string
	questions   []seedQuestion
}

var exercises = []seedExercise{
	{
		title:       "Algebra Basics",
		description: "Linear equations and simple factoring.",
		questions: []seedQuestion{
			{model.QuestionTypeMultipleChoice, "Solve for x: 2x + 6 = 14", []string{"2", "4", "6", "8"}, "4"},
			{model.QuestionTypeMultipleChoice, "What is the value of 3^2 + 4^2?", []string{"25", "24", "49", "12"}, "25"},
			{model.QuestionTypeShortAnswer, "Factor: x^2 - 9 = (x + 3)(x - ?)", nil, "3"},
			{model.QuestionTypeMultipleChoice, "If y = 5x and x = 3, what is y?", []string{"8", "15", "53", "35"}, "15"},
		},
	},
	{
		title:       "World Geography",
		description: "Capitals, rivers and continents.",
		questions: []seedQuestion{
			{model.QuestionTypeMultipleChoice, "What is the capital of Australia?", []string{"Sydney", "Melbourne", "Canberra", "Perth"}, "Canberra"},
			{model.QuestionTypeMultipleChoice, "Which river is the longest in the world?", []string{"Amazon", "Nile", "Yangtze", "Mississippi"}, "Nile"},
			{model.QuestionTypeShortAnswer, "On which continent is the Sahara desert?", nil, "Africa"},
		},
	},
	{
		title:       "Programming Fundamentals",
		description: "Core concepts every developer should know.",
		questions: []seedQuestion{
			{model.QuestionTypeMultipleChoice, "What does CPU stand for?", []string{"Central Processing Unit", "Computer Personal Unit", "Central Program Utility", "Core Processing Unit"}, "Central Processing Unit"},
			{model.QuestionTypeMultipleChoice, "Which data structure uses FIFO ordering?", []string{"Stack", "Queue", "Tree", "Graph"}, "Queue"},
			{model.QuestionTypeMultipleChoice, "What is the binary representation of decimal 5?", []string{"100", "101", "110", "111"}, "101"},
			{model.QuestionTypeShortAnswer, "What is the time complexity of binary search, in big-O notation?", nil, "O(log n)"},
		},
	},
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	exerciseRepo := repository.NewExerciseRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)

	fmt.Println("=== Seeding Exercises ===")

	for _, se := range exercises {
		var existingID int
		err := pool.QueryRow(ctx, "SELECT id FROM exercises WHERE title = $1", se.title).Scan(&existingID)
		if err == nil {
			fmt.Printf("Skipping %q (already present, id=%d)\n", se.title, existingID)
			continue
		}

		exercise := &model.Exercise{Title: se.title, Description: se.description}
		if err := exerciseRepo.Create(ctx, exercise); err != nil {
			log.Fatal().Err(err).Str("title", se.title).Msg("Failed to create exercise")
		}

		for _, sq := range se.questions {
			var options json.RawMessage
			if sq.options != nil {
				options, _ = json.Marshal(sq.options)
			}
			question := &model.Question{
				ExerciseID:   exercise.ID,
				QuestionType: sq.qtype,
				Content:      sq.content,
				Options:      options,
				Answer:       sq.answer,
			}
			if err := questionRepo.Create(ctx, question); err != nil {
				log.Fatal().Err(err).Str("exercise", se.title).Msg("Failed to create question")
			}
		}

		fmt.Printf("Created %q with %d questions (id=%d)\n", se.title, len(se.questions), exercise.ID)
	}

	fmt.Println("=== Seeding complete ===")
}
