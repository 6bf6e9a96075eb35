package catalog

import (
	"context"

	"github.com/bonecole/appcore/internal/domain"
)

// Demo media URLs, publicly available test assets.
const (
	sampleVideoURL = "http://commondatastorage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4"
	sampleAudioURL = "https://www.soundhelix.com/examples/mp3/SoundHelix-Song-1.mp3"
	samplePDFURL   = "https://www.w3.org/WAI/ER/tests/xhtml/testfiles/resources/pdf/dummy.pdf"
)

// Memory in-memory course and book catalog seeded with the demo data. There
// is no backend; the catalog is fixed at construction.
type Memory struct {
	courses []*domain.Course
	books   []*domain.Book
}

var _ domain.Catalog = &Memory{}

// NewMemoryCatalog create the demo catalog
func NewMemoryCatalog() *Memory {
	return &Memory{courses: demoCourses(), books: demoBooks()}
}

// Courses implement domain.Catalog
func (m *Memory) Courses(ctx context.Context) []*domain.Course {
	return m.courses
}

// Course implement domain.Catalog
func (m *Memory) Course(ctx context.Context, courseID string) (*domain.Course, bool) {
	for _, course := range m.courses {
		if course.ID == courseID {
			return course, true
		}
	}
	return nil, false
}

// Books implement domain.Catalog
func (m *Memory) Books(ctx context.Context) []*domain.Book {
	return m.books
}

// Book implement domain.Catalog
func (m *Memory) Book(ctx context.Context, bookID string) (*domain.Book, bool) {
	for _, book := range m.books {
		if book.ID == bookID {
			return book, true
		}
	}
	return nil, false
}

// demoLessons every demo course carries the same lesson set, matching the
// sample content pack.
func demoLessons() []domain.Lesson {
	return []domain.Lesson{
		{ID: "l1", Title: "Introduction à l'algèbre", Type: domain.MediaTypeVideo, Size: "45 MB", Duration: "15 min", MediaURL: sampleVideoURL},
		{ID: "l2", Title: "Équations linéaires - Théorie", Type: domain.MediaTypePDF, Size: "2.3 MB", MediaURL: samplePDFURL},
		{ID: "l3", Title: "Équations linéaires - Pratique", Type: domain.MediaTypeVideo, Size: "52 MB", Duration: "20 min", MediaURL: sampleVideoURL},
		{ID: "l4", Title: "Systèmes d'équations", Type: domain.MediaTypeVideo, Size: "68 MB", Duration: "25 min", MediaURL: sampleVideoURL},
		{ID: "l5", Title: "Exercices - Systèmes d'équations", Type: domain.MediaTypePDF, Size: "1.8 MB", MediaURL: samplePDFURL},
		{ID: "l6", Title: "Fonctions quadratiques", Type: domain.MediaTypeVideo, Size: "75 MB", Duration: "30 min", MediaURL: sampleVideoURL},
		{ID: "l7", Title: "Résolution de problèmes", Type: domain.MediaTypeAudio, Size: "12 MB", Duration: "18 min", MediaURL: sampleAudioURL},
		{ID: "l8", Title: "Résumé du cours", Type: domain.MediaTypePDF, Size: "3.5 MB", MediaURL: samplePDFURL},
	}
}

func demoCourses() []*domain.Course {
	return []*domain.Course{
		{ID: "1", Title: "Mathématiques", Description: "Algèbre et Géométrie", Thumbnail: "📐", GradeLevel: "10ème Année", Lessons: demoLessons()},
		{ID: "2", Title: "Physique", Description: "Mécanique et Électricité", Thumbnail: "⚛️", GradeLevel: "10ème Année", Lessons: demoLessons()},
		{ID: "3", Title: "Chimie", Description: "Chimie Organique", Thumbnail: "🧪", GradeLevel: "11ème Année", Lessons: demoLessons()},
		{ID: "4", Title: "Economie", Description: "Micro et Macroéconomie", Thumbnail: "📈", GradeLevel: "11ème Année", Lessons: demoLessons()},
		{ID: "5", Title: "Philosophie", Description: "Pensée et Raisonnement", Thumbnail: "🤔", GradeLevel: "12ème Année", Lessons: demoLessons()},
		{ID: "6", Title: "Anglais", Description: "Langue et Culture", Thumbnail: "🇬🇧", GradeLevel: "10ème Année", Lessons: demoLessons()},
		{ID: "7", Title: "Français", Description: "Littérature et Grammaire", Thumbnail: "🇫🇷", GradeLevel: "11ème Année", Lessons: demoLessons()},
		{ID: "8", Title: "Histoire", Description: "Histoire du Monde", Thumbnail: "📜", GradeLevel: "12ème Année", Lessons: demoLessons()},
	}
}

func demoBooks() []*domain.Book {
	return []*domain.Book{
		{ID: "b1", Title: "Une si longue lettre", Author: "Mariama Bâ", Description: "Un chef-d'œuvre de la littérature africaine francophone.", Thumbnail: "📕", PDFURL: samplePDFURL},
		{ID: "b2", Title: "L'Enfant noir", Author: "Camara Laye", Description: "Une autobiographie touchante sur l'enfance en Afrique.", Thumbnail: "📗", PDFURL: samplePDFURL},
		{ID: "b3", Title: "L'alchimiste", Author: "Paulo Coelho", Description: "Une quête spirituelle et philosophique inoubliable.", Thumbnail: "📘", PDFURL: samplePDFURL},
		{ID: "b4", Title: "Pensez et devenez riche", Author: "Napoleon Hill", Description: "Les clés du succès et de la réussite personnelle.", Thumbnail: "📙", PDFURL: samplePDFURL},
		{ID: "b5", Title: "Le Petit Prince", Author: "Antoine de Saint-Exupéry", Description: "Un conte poétique sur l'amitié et l'amour.", Thumbnail: "📔", PDFURL: samplePDFURL},
		{ID: "b6", Title: "Les Misérables", Author: "Victor Hugo", Description: "Une épopée sur la justice et la rédemption.", Thumbnail: "📕", PDFURL: samplePDFURL},
	}
}
