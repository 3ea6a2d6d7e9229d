/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/joho/godotenv"

	"github.com/suparena/modelrepo/repository"
	"github.com/suparena/modelrepo/repository/testmodels"
)

func getPlayerRepo(t *testing.T) *Repository[testmodels.Player] {
	t.Helper()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, proceeding with environment variables")
	}

	awsAccessKey := os.Getenv("AWS_ACCESS_KEY")
	awsSecretKey := os.Getenv("AWS_SECRET_KEY")
	awsDDBTableName := os.Getenv("AWS_DDB_TABLE")
	region := os.Getenv("AWS_REGION")

	if awsAccessKey == "" || awsDDBTableName == "" {
		t.Skip("AWS credentials not set, skipping dynamodb integration test")
	}

	repo, err := New[testmodels.Player](awsAccessKey, awsSecretKey, region, awsDDBTableName)
	if err != nil {
		t.Fatal(err)
	}
	return repo
}

func TestDynamoDBLifecycle(t *testing.T) {
	repo := getPlayerRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, map[string]any{"name": "Alice", "value": 100})
	if err != nil {
		t.Fatal(err)
	}
	if created == nil || created.ID == "" {
		t.Fatalf("expected created player with generated id, got %+v", created)
	}

	found, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if found == nil || found.Name != "Alice" {
		t.Fatalf("expected Alice, got %+v", found)
	}

	updated, err := repo.Update(ctx, created.ID, map[string]any{"value": 200})
	if err != nil {
		t.Fatal(err)
	}
	if updated == nil || updated.Value != 200 || updated.Name != "Alice" {
		t.Fatalf("partial update failed: %+v", updated)
	}

	ok, err := repo.Delete(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected delete to report true")
	}

	gone, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if gone != nil {
		t.Fatalf("expected player to be gone, got %+v", gone)
	}
}

func TestDynamoDBCreateExistingIDResolvesAbsent(t *testing.T) {
	repo := getPlayerRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, map[string]any{"name": "Alice"})
	if err != nil {
		t.Fatal(err)
	}
	defer repo.Delete(ctx, created.ID)

	dup, err := repo.Create(ctx, map[string]any{"id": created.ID, "name": "Bob"})
	if err != nil {
		t.Fatal(err)
	}
	if dup != nil {
		t.Fatalf("expected conditional put to resolve absent, got %+v", dup)
	}
}

func TestDynamoDBUpdateMissingIDResolvesAbsent(t *testing.T) {
	repo := getPlayerRepo(t)

	updated, err := repo.Update(context.Background(), "does-not-exist", map[string]any{"value": 1})
	if err != nil {
		t.Fatal(err)
	}
	if updated != nil {
		t.Fatalf("expected absent result, got %+v", updated)
	}
}

func TestDynamoDBFindAll(t *testing.T) {
	repo := getPlayerRepo(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, map[string]any{"name": "FindAllTarget", "value": 7})
	if err != nil {
		t.Fatal(err)
	}
	defer repo.Delete(ctx, created.ID)

	query := repository.Predicate{"name": "FindAllTarget", "value": 7}
	results, err := repo.FindAll(ctx, query, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one match")
	}

	// A negative limit means unbounded and must not change the result.
	limit := int64(-1)
	unbounded, err := repo.FindAll(ctx, query, &repository.FindOptions{Limit: &limit})
	if err != nil {
		t.Fatal(err)
	}
	if len(unbounded) != len(results) {
		t.Fatalf("expected %d matches with negative limit, got %d", len(results), len(unbounded))
	}
}
