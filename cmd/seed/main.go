// seed inserts an admin user, a few tags, and sample blogs into the local
// dev database.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"github.com/shahadathhs/blogman/internal/auth"
	"github.com/shahadathhs/blogman/internal/infrastructure/postgres"
)

const (
	adminEmail    = "admin@blogman.local"
	adminPassword = "admin123"
)

type tagSpec struct {
	name string
	slug string
}

var tags = []tagSpec{
	{"Go", "go"},
	{"Databases", "databases"},
	{"Web Development", "web-development"},
	{"DevOps", "devops"},
	{"Testing", "testing"},
}

type blogSpec struct {
	title   string
	slug    string
	tagSlug string
}

var blogs = []blogSpec{
	{"Getting started", "getting-started", "go"},
	{"Schema design notes", "schema-design-notes", "databases"},
	{"Deploying the backend", "deploying-the-backend", "devops"},
}

func main() {
	_ = godotenv.Load()

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	passwordHash, err := auth.HashSecret(adminPassword)
	if err != nil {
		log.Fatalf("hash admin password: %v", err)
	}

	// Upsert admin user
	var adminID string
	err = pool.QueryRow(ctx, `
		INSERT INTO users (email, password, role, email_verified, is_active)
		VALUES ($1, $2, 'admin', true, true)
		ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
		RETURNING id`,
		adminEmail, passwordHash,
	).Scan(&adminID)
	if err != nil {
		log.Fatalf("upsert admin: %v", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO profiles (user_id, name)
		VALUES ($1, 'Admin')
		ON CONFLICT (user_id) DO NOTHING`,
		adminID,
	)
	if err != nil {
		log.Fatalf("upsert admin profile: %v", err)
	}

	// Insert tags, skip any that already exist (idempotent re-runs)
	tagIDs := make(map[string]string, len(tags))
	var tagsInserted int
	for _, spec := range tags {
		var id string
		err := pool.QueryRow(ctx, `
			INSERT INTO tags (name, slug) VALUES ($1, $2)
			ON CONFLICT (slug) DO UPDATE SET updated_at = NOW()
			RETURNING id`,
			spec.name, spec.slug,
		).Scan(&id)
		if err != nil {
			log.Fatalf("insert tag %s: %v", spec.slug, err)
		}
		tagIDs[spec.slug] = id
		tagsInserted++
	}

	// Insert sample published blogs
	var blogsInserted, blogsSkipped int
	for i, spec := range blogs {
		var id string
		err := pool.QueryRow(ctx, `
			INSERT INTO blogs (title, content, slug, published, author_id)
			VALUES ($1, $2, $3, true, $4)
			ON CONFLICT (slug) DO NOTHING
			RETURNING id`,
			spec.title, fmt.Sprintf("Sample content for post %d.", i+1), spec.slug, adminID,
		).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			blogsSkipped++
			continue
		}
		if err != nil {
			log.Fatalf("insert blog %s: %v", spec.slug, err)
		}
		if _, err := pool.Exec(ctx, `
			INSERT INTO blog_tags (blog_id, tag_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`,
			id, tagIDs[spec.tagSlug],
		); err != nil {
			log.Fatalf("attach tag to %s: %v", spec.slug, err)
		}
		blogsInserted++
	}

	fmt.Println("Seed complete")
	fmt.Println()
	fmt.Printf("  Admin:         %s / %s\n", adminEmail, adminPassword)
	fmt.Printf("  Admin ID:      %s\n", adminID)
	fmt.Printf("  Tags:          %d\n", tagsInserted)
	fmt.Printf("  Blogs created: %d  (skipped %d already existing)\n", blogsInserted, blogsSkipped)
	fmt.Println()
	fmt.Println("How to test:")
	fmt.Println()
	fmt.Println("  Step 1 — log in as the admin:")
	fmt.Println()
	fmt.Printf("    curl -s -X POST http://localhost:8080/auth/login \\\n")
	fmt.Printf("      -H 'Content-Type: application/json' \\\n")
	fmt.Printf("      -d '{\"email\":\"%s\",\"password\":\"%s\"}'\n", adminEmail, adminPassword)
	fmt.Println()
	fmt.Println("  Step 2 — list blogs (public) and users (admin):")
	fmt.Println()
	fmt.Println("    curl -s http://localhost:8080/blogs")
	fmt.Println("    export JWT=eyJ...")
	fmt.Println("    curl -s http://localhost:8080/users -H \"Authorization: Bearer $JWT\"")
}
