package domain

import "errors"

// ErrNotConnected download attempted while not connected to the kiosk
var ErrNotConnected = errors.New("Vous devez être connecté au kiosque pour télécharger du contenu.")

// ErrNoSuchCourse unknown course id
var ErrNoSuchCourse = errors.New("Cours introuvable")

// ErrNoSuchLesson unknown lesson id
var ErrNoSuchLesson = errors.New("Leçon introuvable")

// ErrNoSuchBook unknown book id
var ErrNoSuchBook = errors.New("Livre introuvable")
