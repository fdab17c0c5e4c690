package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/migrate [up|drop|seed|recount]")
		os.Exit(1)
	}

	command := os.Args[1]

	ctx := context.Background()
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer conn.Close(ctx)

	switch command {
	case "up":
		if err := createTables(ctx, conn); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Println("All tables created successfully")

	case "drop":
		if err := dropTables(ctx, conn); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Println("All tables dropped successfully")

	case "seed":
		if err := seedData(ctx, conn); err != nil {
			log.Fatalf("Failed to seed data: %v", err)
		}
		fmt.Println("Data seeded successfully")

	case "recount":
		if err := recountBookedCounts(ctx, conn); err != nil {
			log.Fatalf("Failed to recount booked counts: %v", err)
		}
		fmt.Println("Booked counts recomputed successfully")

	default:
		fmt.Printf("Unknown command: %s\n", command)
		os.Exit(1)
	}
}

func createTables(ctx context.Context, conn *pgx.Conn) error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id         BIGSERIAL PRIMARY KEY,
		openid     VARCHAR(100) NOT NULL UNIQUE,
		unionid    VARCHAR(100),
		nickname   VARCHAR(100),
		avatar     VARCHAR(500),
		phone      VARCHAR(20),
		gender     INTEGER NOT NULL DEFAULT 0,
		country    VARCHAR(50),
		province   VARCHAR(50),
		city       VARCHAR(50),
		language   VARCHAR(20),
		is_active  BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE INDEX IF NOT EXISTS idx_users_unionid ON users (unionid);

	CREATE TABLE IF NOT EXISTS activities (
		id               BIGSERIAL PRIMARY KEY,
		title            VARCHAR(200) NOT NULL,
		description      TEXT,
		cover_image      VARCHAR(500),
		location         VARCHAR(200),
		organizer        VARCHAR(100),
		start_time       TIMESTAMPTZ NOT NULL,
		end_time         TIMESTAMPTZ NOT NULL,
		price            DOUBLE PRECISION NOT NULL DEFAULT 0,
		max_participants INTEGER NOT NULL DEFAULT 100,
		booked_count     INTEGER NOT NULL DEFAULT 0,
		is_active        BOOLEAN NOT NULL DEFAULT TRUE,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT chk_schedule_window CHECK (end_time >= start_time),
		CONSTRAINT chk_price CHECK (price >= 0),
		CONSTRAINT chk_capacity CHECK (max_participants > 0),
		CONSTRAINT chk_booked_count CHECK (booked_count >= 0 AND booked_count <= max_participants)
	);
	CREATE INDEX IF NOT EXISTS idx_activities_active_start ON activities (is_active, start_time);
	CREATE INDEX IF NOT EXISTS idx_activities_booked_count ON activities (booked_count DESC);

	CREATE TABLE IF NOT EXISTS bookings (
		id           BIGSERIAL PRIMARY KEY,
		user_id      BIGINT NOT NULL REFERENCES users (id),
		activity_id  BIGINT NOT NULL REFERENCES activities (id),
		name         VARCHAR(100) NOT NULL,
		phone        VARCHAR(20) NOT NULL,
		participants INTEGER NOT NULL DEFAULT 1,
		remark       VARCHAR(500),
		status       VARCHAR(20) NOT NULL DEFAULT 'confirmed',
		checked_in   BOOLEAN NOT NULL DEFAULT FALSE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		CONSTRAINT chk_participants CHECK (participants >= 1),
		CONSTRAINT chk_status CHECK (status IN ('pending', 'confirmed', 'cancelled', 'completed'))
	);
	CREATE INDEX IF NOT EXISTS idx_bookings_user_created ON bookings (user_id, created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_bookings_activity_status ON bookings (activity_id, status);
	`

	_, err := conn.Exec(ctx, schema)
	return err
}

func dropTables(ctx context.Context, conn *pgx.Conn) error {
	_, err := conn.Exec(ctx, `DROP TABLE IF EXISTS bookings, activities, users CASCADE`)
	return err
}

func seedData(ctx context.Context, conn *pgx.Conn) error {
	_, err := conn.Exec(ctx, `
		INSERT INTO activities (title, description, location, organizer, start_time, end_time, price, max_participants)
		VALUES
			('City Park Morning Run', '5km group run, all levels welcome', 'Riverside Park, North Gate', 'RunClub', now() + interval '3 days', now() + interval '3 days 2 hours', 0, 50),
			('Pottery Workshop', 'Hands-on wheel throwing for beginners', 'Studio 12, Arts District', 'ClayWorks', now() + interval '7 days', now() + interval '7 days 3 hours', 120, 8),
			('Weekend Hiking Trip', 'Guided hike with lunch included', 'West Mountain trailhead', 'TrailBlazers', now() + interval '10 days', now() + interval '10 days 6 hours', 45, 20)
		ON CONFLICT DO NOTHING
	`)
	return err
}

// recountBookedCounts recomputes each activity's booked_count from its
// confirmed and completed bookings. Any backfill touching these tables must
// leave the counter equal to that sum; run this after manual data surgery.
func recountBookedCounts(ctx context.Context, conn *pgx.Conn) error {
	tag, err := conn.Exec(ctx, `
		UPDATE activities a
		SET booked_count = COALESCE(b.total, 0),
		    updated_at = now()
		FROM (
			SELECT activity_id, SUM(participants) AS total
			FROM bookings
			WHERE status IN ('confirmed', 'completed')
			GROUP BY activity_id
		) b
		WHERE a.id = b.activity_id
		  AND a.booked_count IS DISTINCT FROM COALESCE(b.total, 0)
	`)
	if err != nil {
		return err
	}
	fmt.Printf("Adjusted %d activities\n", tag.RowsAffected())

	// Activities with no qualifying bookings at all.
	tag, err = conn.Exec(ctx, `
		UPDATE activities a
		SET booked_count = 0, updated_at = now()
		WHERE booked_count <> 0
		  AND NOT EXISTS (
			SELECT 1 FROM bookings
			WHERE activity_id = a.id AND status IN ('confirmed', 'completed')
		  )
	`)
	if err != nil {
		return err
	}
	fmt.Printf("Zeroed %d activities\n", tag.RowsAffected())

	return nil
}
