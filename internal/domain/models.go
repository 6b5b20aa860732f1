// Package domain defines the persistence models for the book-club platform:
// people, books, tags, clubs, membership, reading history, chat, messages,
// and reviews. These types are mapped with GORM and form the core data layer
// of the application.
package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Model is the embedded base for every UUID-keyed entity. The ID is assigned
// server-side in BeforeCreate; callers never supply primary keys.
type Model struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a fresh UUID when none was set (tests may pin IDs).
func (m *Model) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// SoftDelete marks an entity as soft-deletable. GORM hides rows with a
// non-null deleted_at from all default reads and turns Delete into a
// timestamp update, so every soft-deletable entity shares one mechanism.
type SoftDelete struct {
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Person is a platform member. The password hash is never serialized.
//
// Fields:
//   - Email: unique login identifier (enforced by unique index).
//   - PasswordHash: bcrypt digest, excluded from every JSON representation.
//   - Bio / PhotoURL: optional profile fields (nullable).
type Person struct {
	Model
	Name         string  `json:"name"      gorm:"type:varchar(255);not null"`
	Email        string  `json:"email"     gorm:"type:varchar(255);not null;uniqueIndex:ux_people_email"`
	PasswordHash string  `json:"-"         gorm:"type:varchar(255);not null"`
	Bio          *string `json:"bio"       gorm:"type:text"`
	PhotoURL     *string `json:"photo_url" gorm:"type:varchar(512)"`
	SoftDelete
}

// TableName returns the database table name for Person.
func (Person) TableName() string { return "people" }

// Book is a work that clubs read and members review.
//
// Fields:
//   - PublicationYear: optional; bounded to currentYear+5 at the service layer.
//   - CreatedByID: optional reference to the Person who registered the book.
//   - Tags: many-to-many through book_tags; join-row attributes are never
//     exposed in responses.
type Book struct {
	Model
	Title           string   `json:"title"            gorm:"type:varchar(255);not null"`
	Author          string   `json:"author"           gorm:"type:varchar(255);not null"`
	Synopsis        *string  `json:"synopsis"         gorm:"type:text"`
	CoverURL        *string  `json:"cover_url"        gorm:"type:varchar(512)"`
	PublicationYear *int     `json:"publication_year"`
	CreatedByID     *string  `json:"created_by_id"    gorm:"type:char(36);index"`
	CreatedBy       *Person  `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;references:ID"`
	Tags            []Tag    `json:"tags,omitempty"   gorm:"many2many:book_tags;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Reviews         []Review `json:"reviews,omitempty" gorm:"foreignKey:BookID"`
	SoftDelete
}

// TableName returns the database table name for Book.
func (Book) TableName() string { return "books" }

// Tag is a label attachable to books. Names are unique and 1–50 characters.
// Tags are hard-deleted; removing one cascades its book_tags rows.
type Tag struct {
	Model
	Name string `json:"name" gorm:"type:varchar(50);not null;uniqueIndex:ux_tags_name"`
}

// TableName returns the database table name for Tag.
func (Tag) TableName() string { return "tags" }

// BookTag is the join row behind the Book↔Tag many-to-many relation.
// Composite primary key; cascade-deletes with either side.
type BookTag struct {
	BookID    string    `json:"book_id" gorm:"type:char(36);primaryKey"`
	TagID     string    `json:"tag_id"  gorm:"type:char(36);primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	Book Book `json:"-" gorm:"foreignKey:BookID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Tag  Tag  `json:"-" gorm:"foreignKey:TagID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for BookTag.
func (BookTag) TableName() string { return "book_tags" }

// Club is a reading group owned by a Person, optionally pointing at the book
// it is currently reading.
type Club struct {
	Model
	Name          string  `json:"name"            gorm:"type:varchar(255);not null"`
	Description   *string `json:"description"     gorm:"type:text"`
	CurrentBookID *string `json:"current_book_id" gorm:"type:char(36);index"`
	CreatorID     string  `json:"creator_id"      gorm:"type:char(36);not null;index"`
	CurrentBook   *Book   `json:"current_book,omitempty" gorm:"foreignKey:CurrentBookID;references:ID"`
	Creator       *Person `json:"creator,omitempty"      gorm:"foreignKey:CreatorID;references:ID"`
	SoftDelete
}

// TableName returns the database table name for Club.
func (Club) TableName() string { return "clubs" }

// ClubMember records membership history for a (club, person) pair. The pair
// is the composite primary key, so a person appears in a club at most once;
// "leaving" sets left_at rather than removing the row.
type ClubMember struct {
	ClubID    string     `json:"club_id"   gorm:"type:char(36);primaryKey"`
	PersonID  string     `json:"person_id" gorm:"type:char(36);primaryKey"`
	JoinedAt  time.Time  `json:"joined_at" gorm:"not null"`
	LeftAt    *time.Time `json:"left_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Club   Club   `json:"-" gorm:"foreignKey:ClubID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Person Person `json:"-" gorm:"foreignKey:PersonID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ClubMember.
func (ClubMember) TableName() string { return "club_members" }

// ClubBookHistory records one reading cycle of a club: which book, when the
// cycle started, and (once finished) when it ended.
type ClubBookHistory struct {
	Model
	ClubID     string     `json:"club_id"     gorm:"type:char(36);not null;index"`
	BookID     string     `json:"book_id"     gorm:"type:char(36);not null;index"`
	StartedAt  time.Time  `json:"started_at"  gorm:"not null"`
	FinishedAt *time.Time `json:"finished_at"`
	Notes      *string    `json:"notes"       gorm:"type:text"`

	Club *Club `json:"club,omitempty" gorm:"foreignKey:ClubID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Book *Book `json:"book,omitempty" gorm:"foreignKey:BookID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ClubBookHistory.
func (ClubBookHistory) TableName() string { return "club_book_history" }

// Chat is a message stream attached to a club.
type Chat struct {
	Model
	ClubID string `json:"club_id" gorm:"type:char(36);not null;index"`
	Club   *Club  `json:"club,omitempty" gorm:"foreignKey:ClubID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Chat.
func (Chat) TableName() string { return "chats" }

// Message is a single utterance within a chat. Messages are cascade-deleted
// with their chat and with their author.
type Message struct {
	Model
	ChatID   string  `json:"chat_id"   gorm:"type:char(36);not null;index:idx_chat_msgs,priority:1"`
	PersonID string  `json:"person_id" gorm:"type:char(36);not null;index"`
	Content  string  `json:"content"   gorm:"type:text;not null"`
	Chat     *Chat   `json:"-" gorm:"foreignKey:ChatID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Person   *Person `json:"person,omitempty" gorm:"foreignKey:PersonID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// Review is a person's rating of a book. A person reviews a book at most
// once, enforced by the unique index on the (book_id, person_id) pair; the
// index, not the service-layer pre-check, is the authoritative guard under
// concurrent writers.
type Review struct {
	Model
	BookID   string  `json:"book_id"   gorm:"type:char(36);not null;index;uniqueIndex:ux_reviews_book_person"`
	PersonID string  `json:"person_id" gorm:"type:char(36);not null;uniqueIndex:ux_reviews_book_person"`
	Rating   int     `json:"rating"    gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment  *string `json:"comment"   gorm:"type:text"`

	Book   *Book   `json:"book,omitempty"   gorm:"foreignKey:BookID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Person *Person `json:"person,omitempty" gorm:"foreignKey:PersonID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Review.
func (Review) TableName() string { return "reviews" }
