// Package repositorytest provides an in-memory repository.Repository for
// tests of the layers above the database.
package repositorytest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/emzola/bookswap/data"
	"github.com/emzola/bookswap/internal/genre"
	"github.com/emzola/bookswap/repository"
)

// Memory keeps every table in maps guarded by a single mutex. Cascades and
// conditional status transitions follow the PostgreSQL schema.
type Memory struct {
	mu sync.Mutex

	users      map[int64]data.User
	books      map[int64]data.Book
	genres     map[int64]string
	bookGenres map[int64][]int64
	userBooks  map[int64]data.UserBook
	photos     map[int64]data.Photo
	exchanges  map[int64]data.ExchangeRequest

	nextID int64
	now    func() time.Time

	// FailGenre, when set, is consulted for every genre CreateUserBook is
	// about to attach to a new book. A non-nil result aborts the call and
	// nothing is stored.
	FailGenre func(name string) error
}

var _ repository.Repository = (*Memory)(nil)

func New() *Memory {
	return &Memory{
		users:      make(map[int64]data.User),
		books:      make(map[int64]data.Book),
		genres:     make(map[int64]string),
		bookGenres: make(map[int64][]int64),
		userBooks:  make(map[int64]data.UserBook),
		photos:     make(map[int64]data.Photo),
		exchanges:  make(map[int64]data.ExchangeRequest),
		now:        time.Now,
	}
}

// id hands out identifiers from one sequence, so a newer row always has a
// larger ID than an older one.
func (m *Memory) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *Memory) bookByNameLocked(name string) (data.Book, bool) {
	for _, existing := range m.books {
		if existing.Name == name {
			return existing, true
		}
	}
	return data.Book{}, false
}

func (m *Memory) GetBook(_ context.Context, ID int64) (*data.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	book, ok := m.bookLocked(ID)
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return book, nil
}

func (m *Memory) bookLocked(ID int64) (*data.Book, bool) {
	book, ok := m.books[ID]
	if !ok {
		return nil, false
	}
	names := []string{}
	for _, genreID := range m.bookGenres[ID] {
		names = append(names, m.genres[genreID])
	}
	book.Genres = genre.OrUnknown(names)
	return &book, true
}

func (m *Memory) attachGenresLocked(bookID int64, names []string) {
	for _, name := range names {
		genreID := m.genreIDLocked(name)
		attached := false
		for _, id := range m.bookGenres[bookID] {
			if id == genreID {
				attached = true
				break
			}
		}
		if !attached {
			m.bookGenres[bookID] = append(m.bookGenres[bookID], genreID)
		}
	}
}

func (m *Memory) genreIDLocked(name string) int64 {
	for id, existing := range m.genres {
		if existing == name {
			return id
		}
	}
	id := m.id()
	m.genres[id] = name
	return id
}

func (m *Memory) GetAllGenres(_ context.Context) ([]*data.Genre, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	genres := []*data.Genre{}
	for id, name := range m.genres {
		g := &data.Genre{ID: id, Name: name}
		for _, attached := range m.bookGenres {
			for _, genreID := range attached {
				if genreID == id {
					g.BooksCount++
				}
			}
		}
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].Name < genres[j].Name })
	return genres, nil
}

func (m *Memory) CreateUserBook(_ context.Context, userBook *data.UserBook) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[userBook.UserID]; !ok {
		return repository.ErrRecordNotFound
	}
	book := userBook.Book
	existing, found := m.bookByNameLocked(book.Name)
	if found {
		book.ID = existing.ID
		book.Author = existing.Author
		book.Overview = existing.Overview
	} else {
		if m.FailGenre != nil {
			for _, name := range book.Genres {
				if err := m.FailGenre(name); err != nil {
					return err
				}
			}
		}
		book.ID = m.id()
		stored := *book
		stored.Genres = nil
		m.books[book.ID] = stored
		m.attachGenresLocked(book.ID, book.Genres)
	}
	userBook.ID = m.id()
	userBook.CreatedAt = m.now()
	userBook.Version = 1
	stored := *userBook
	stored.Book = &data.Book{ID: book.ID}
	m.userBooks[userBook.ID] = stored
	return nil
}

func (m *Memory) GetUserBook(_ context.Context, ID int64) (*data.UserBook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	userBook, ok := m.userBookLocked(ID)
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return userBook, nil
}

func (m *Memory) userBookLocked(ID int64) (*data.UserBook, bool) {
	userBook, ok := m.userBooks[ID]
	if !ok {
		return nil, false
	}
	book, ok := m.bookLocked(userBook.Book.ID)
	if !ok {
		return nil, false
	}
	userBook.Book = book
	return &userBook, true
}

// collectUserBooksLocked returns the records accepted by keep, newest first.
func (m *Memory) collectUserBooksLocked(keep func(*data.UserBook) bool) []*data.UserBook {
	userBooks := []*data.UserBook{}
	for id := range m.userBooks {
		userBook, ok := m.userBookLocked(id)
		if ok && keep(userBook) {
			userBooks = append(userBooks, userBook)
		}
	}
	sort.Slice(userBooks, func(i, j int) bool { return userBooks[i].ID > userBooks[j].ID })
	return userBooks
}

func (m *Memory) GetAllUserBooksForUser(_ context.Context, userID int64, status string) ([]*data.UserBook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.collectUserBooksLocked(func(ub *data.UserBook) bool {
		return ub.UserID == userID && (status == "" || ub.Status == status)
	}), nil
}

func (m *Memory) SearchUserBooks(_ context.Context, title, author string, genres []string) ([]*data.UserBook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	title, author = strings.ToLower(title), strings.ToLower(author)
	return m.collectUserBooksLocked(func(ub *data.UserBook) bool {
		if ub.Status != data.StatusAvailable {
			return false
		}
		if !strings.Contains(strings.ToLower(ub.Book.Name), title) ||
			!strings.Contains(strings.ToLower(ub.Book.Author), author) {
			return false
		}
		for _, wanted := range genres {
			found := false
			for _, g := range m.bookGenres[ub.Book.ID] {
				if strings.EqualFold(m.genres[g], wanted) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
		return true
	}), nil
}

func (m *Memory) UpdateUserBook(_ context.Context, userBook *data.UserBook) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.userBooks[userBook.ID]
	if !ok || stored.Version != userBook.Version {
		return repository.ErrEditConflict
	}
	stored.Condition = userBook.Condition
	stored.Location = userBook.Location
	stored.Version++
	m.userBooks[userBook.ID] = stored
	userBook.Version = stored.Version
	return nil
}

func (m *Memory) DeleteUserBook(_ context.Context, ID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.userBooks[ID]; !ok {
		return repository.ErrRecordNotFound
	}
	m.deleteUserBookLocked(ID)
	return nil
}

func (m *Memory) deleteUserBookLocked(ID int64) {
	delete(m.userBooks, ID)
	for id, photo := range m.photos {
		if photo.UserBookID == ID {
			delete(m.photos, id)
		}
	}
	for id, request := range m.exchanges {
		if request.UserBookID == ID {
			delete(m.exchanges, id)
		}
	}
}

func (m *Memory) CreatePhoto(_ context.Context, photo *data.Photo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.userBooks[photo.UserBookID]; !ok {
		return repository.ErrRecordNotFound
	}
	photo.ID = m.id()
	photo.CreatedAt = m.now()
	m.photos[photo.ID] = *photo
	return nil
}

func (m *Memory) GetPhoto(_ context.Context, ID int64) (*data.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	photo, ok := m.photos[ID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return &photo, nil
}

func (m *Memory) GetAllPhotosForUserBook(_ context.Context, userBookID int64) ([]*data.Photo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	photos := []*data.Photo{}
	for _, photo := range m.photos {
		if photo.UserBookID == userBookID {
			photo := photo
			photos = append(photos, &photo)
		}
	}
	sort.Slice(photos, func(i, j int) bool { return photos[i].ID < photos[j].ID })
	return photos, nil
}

func (m *Memory) UpdatePhoto(_ context.Context, photo *data.Photo) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.photos[photo.ID]
	if !ok {
		return repository.ErrRecordNotFound
	}
	stored.URL = photo.URL
	stored.BlurHash = photo.BlurHash
	m.photos[photo.ID] = stored
	return nil
}

func (m *Memory) DeletePhoto(_ context.Context, ID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.photos[ID]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(m.photos, ID)
	return nil
}

func (m *Memory) CreateExchangeRequest(_ context.Context, request *data.ExchangeRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	userBook, ok := m.userBooks[request.UserBookID]
	if !ok || userBook.Status != data.StatusAvailable {
		return repository.ErrInvalidState
	}
	userBook.Status = data.StatusRequested
	userBook.Version++
	m.userBooks[userBook.ID] = userBook

	request.ID = m.id()
	request.Status = data.ExchangePending
	request.CreatedAt = m.now()
	request.UpdatedAt = request.CreatedAt
	stored := *request
	stored.BookName = ""
	m.exchanges[request.ID] = stored
	return nil
}

func (m *Memory) ResolveExchangeRequest(_ context.Context, request *data.ExchangeRequest, status, userBookStatus string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.exchanges[request.ID]
	if !ok || stored.Status != data.ExchangePending {
		return repository.ErrInvalidState
	}
	userBook, ok := m.userBooks[stored.UserBookID]
	if !ok {
		return repository.ErrRecordNotFound
	}
	stored.Status = status
	stored.UpdatedAt = m.now()
	m.exchanges[stored.ID] = stored
	userBook.Status = userBookStatus
	userBook.Version++
	m.userBooks[userBook.ID] = userBook

	request.Status = stored.Status
	request.UpdatedAt = stored.UpdatedAt
	return nil
}

func (m *Memory) exchangeRequestLocked(ID int64) (*data.ExchangeRequest, bool) {
	request, ok := m.exchanges[ID]
	if !ok {
		return nil, false
	}
	if userBook, ok := m.userBooks[request.UserBookID]; ok {
		request.BookName = m.books[userBook.Book.ID].Name
	}
	return &request, true
}

func (m *Memory) GetExchangeRequest(_ context.Context, ID int64) (*data.ExchangeRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	request, ok := m.exchangeRequestLocked(ID)
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return request, nil
}

func (m *Memory) GetAllExchangeRequestsForUser(_ context.Context, userID int64) ([]*data.ExchangeRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	requests := []*data.ExchangeRequest{}
	for id, stored := range m.exchanges {
		if stored.RequesterID != userID && stored.OwnerID != userID {
			continue
		}
		request, _ := m.exchangeRequestLocked(id)
		requests = append(requests, request)
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].ID > requests[j].ID })
	return requests, nil
}

func (m *Memory) RegisterUser(_ context.Context, user *data.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.userTakenLocked(user) {
		return repository.ErrDuplicateRecord
	}
	user.ID = m.id()
	user.CreatedAt = m.now()
	user.Version = 1
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) userTakenLocked(user *data.User) bool {
	for id, existing := range m.users {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username || strings.EqualFold(existing.Email, user.Email) {
			return true
		}
	}
	return false
}

func (m *Memory) GetUserByID(_ context.Context, ID int64) (*data.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[ID]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return &user, nil
}

func (m *Memory) UpdateUser(_ context.Context, user *data.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.users[user.ID]
	if !ok || stored.Version != user.Version {
		return repository.ErrEditConflict
	}
	if m.userTakenLocked(user) {
		return repository.ErrDuplicateRecord
	}
	user.Version++
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) DeleteUser(_ context.Context, ID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[ID]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(m.users, ID)
	for id, userBook := range m.userBooks {
		if userBook.UserID == ID {
			m.deleteUserBookLocked(id)
		}
	}
	for id, request := range m.exchanges {
		if request.RequesterID == ID || request.OwnerID == ID {
			delete(m.exchanges, id)
		}
	}
	return nil
}
