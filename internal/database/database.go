package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/glebarez/go-sqlite"
	"golang.org/x/crypto/bcrypt"

	"quadsolver/internal/models"
	"quadsolver/internal/quadratic"
)

// Формат даты создания уравнения
const TimeLayout = "02.01.2006 15:04:05"

var (
	ErrUserExists       = errors.New("user already exists")
	ErrEquationNotFound = errors.New("equation not found")
)

type Store struct {
	db *sql.DB
}

// Open открывает базу sqlite по указанному пути и создает таблицы.
// Путь ":memory:" удобен для тестов.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}
	// у каждого соединения с :memory: своя база
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			login TEXT UNIQUE NOT NULL,
			password TEXT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ошибка создания таблицы users: %w", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS equations (
			id TEXT PRIMARY KEY,
			user_id INTEGER NOT NULL,
			a REAL NOT NULL,
			b REAL NOT NULL,
			c REAL NOT NULL,
			status TEXT NOT NULL,
			root_kind TEXT,
			x1_re REAL,
			x1_im REAL,
			x2_re REAL,
			x2_im REAL,
			display TEXT NOT NULL DEFAULT '',
			error_kind TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL,
			FOREIGN KEY (user_id) REFERENCES users(id)
		)
	`)
	if err != nil {
		return fmt.Errorf("ошибка создания таблицы equations: %w", err)
	}
	return nil
}

// CreateUser создает нового пользователя с хешированным паролем
func (s *Store) CreateUser(login, password string) (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM users WHERE login = ?", login).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("ошибка проверки существования пользователя: %w", err)
	}
	if count > 0 {
		return 0, fmt.Errorf("логин %s: %w", login, ErrUserExists)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, fmt.Errorf("ошибка хеширования пароля: %w", err)
	}

	result, err := s.db.Exec("INSERT INTO users (login, password) VALUES (?, ?)", login, string(hashedPassword))
	if err != nil {
		return 0, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ошибка получения ID пользователя: %w", err)
	}
	return int(id), nil
}

// GetUser возвращает nil, nil если пользователь не найден
func (s *Store) GetUser(login string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRow("SELECT id, login, password FROM users WHERE login = ?", login).
		Scan(&user.ID, &user.Login, &user.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	return &user, nil
}

// CheckPasswordHash сравнивает пароль и хеш пароля
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// SaveEquation сохраняет уравнение или обновляет уже сохраненное
func (s *Store) SaveEquation(eq *models.Equation, userID int) error {
	if eq.CreatedAt == "" {
		eq.CreatedAt = time.Now().Format(TimeLayout)
	}

	var kind sql.NullString
	var x1re, x1im, x2re, x2im sql.NullFloat64
	if eq.Roots != nil {
		kind = sql.NullString{String: string(eq.Roots.Kind()), Valid: true}
		x1re = sql.NullFloat64{Float64: eq.Roots.X1.Re, Valid: true}
		x1im = sql.NullFloat64{Float64: eq.Roots.X1.Im, Valid: true}
		x2re = sql.NullFloat64{Float64: eq.Roots.X2.Re, Valid: true}
		x2im = sql.NullFloat64{Float64: eq.Roots.X2.Im, Valid: true}
	}

	_, err := s.db.Exec(`
		INSERT INTO equations (id, user_id, a, b, c, status, root_kind, x1_re, x1_im, x2_re, x2_im, display, error_kind, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			status = excluded.status,
			root_kind = excluded.root_kind,
			x1_re = excluded.x1_re,
			x1_im = excluded.x1_im,
			x2_re = excluded.x2_re,
			x2_im = excluded.x2_im,
			display = excluded.display,
			error_kind = excluded.error_kind`,
		eq.ID, userID, eq.A, eq.B, eq.C, eq.Status, kind, x1re, x1im, x2re, x2im, eq.Display, eq.ErrorKind, eq.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка сохранения уравнения: %w", err)
	}

	slog.Debug("уравнение сохранено в БД", "id", eq.ID, "user_id", userID, "status", eq.Status)
	return nil
}

const equationColumns = "id, a, b, c, status, root_kind, x1_re, x1_im, x2_re, x2_im, display, error_kind, created_at"

// GetEquations возвращает все уравнения пользователя в порядке создания
func (s *Store) GetEquations(userID int) ([]models.Equation, error) {
	rows, err := s.db.Query("SELECT "+equationColumns+" FROM equations WHERE user_id = ? ORDER BY rowid", userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения уравнений: %w", err)
	}
	defer rows.Close()

	equations := []models.Equation{}
	for rows.Next() {
		eq, err := scanEquation(rows)
		if err != nil {
			return nil, err
		}
		equations = append(equations, *eq)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения уравнений: %w", err)
	}
	return equations, nil
}

func (s *Store) GetEquation(id string, userID int) (*models.Equation, error) {
	row := s.db.QueryRow("SELECT "+equationColumns+" FROM equations WHERE id = ? AND user_id = ?", id, userID)
	eq, err := scanEquation(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrEquationNotFound)
	}
	return eq, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEquation(row scanner) (*models.Equation, error) {
	var eq models.Equation
	var kind sql.NullString
	var x1re, x1im, x2re, x2im sql.NullFloat64

	err := row.Scan(&eq.ID, &eq.A, &eq.B, &eq.C, &eq.Status, &kind,
		&x1re, &x1im, &x2re, &x2im, &eq.Display, &eq.ErrorKind, &eq.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("ошибка чтения данных уравнения: %w", err)
	}

	if kind.Valid {
		k := quadratic.RootKind(kind.String)
		eq.Roots = &quadratic.RootPair{
			X1: quadratic.Root{Kind: k, Re: x1re.Float64, Im: x1im.Float64},
			X2: quadratic.Root{Kind: k, Re: x2re.Float64, Im: x2im.Float64},
		}
	}
	return &eq, nil
}
