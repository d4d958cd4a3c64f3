// Package common — errors.go определяет пользовательские ошибки,
// которые используются во всех модулях бота.
// Эти ошибки позволяют обработчикам различать типы проблем
// и отправлять пользователю понятные сообщения.
package common

import "errors"

// Ошибки анкет
var (
	// ErrProfileNotFound — анкета не найдена в базе
	ErrProfileNotFound = errors.New("анкета не найдена")
	// ErrTooManyPhotos — превышен лимит фотографий
	ErrTooManyPhotos = errors.New("превышен лимит фотографий")
)

// Ошибки антифлуда
var (
	// ErrRateLimited — лимит действий исчерпан
	ErrRateLimited = errors.New("лимит действий исчерпан, попробуйте позже")
)

// Ошибки скарг
var (
	// ErrComplaintDuplicate — на эту анкету уже жаловались
	ErrComplaintDuplicate = errors.New("скарга на цю анкету вже існує")
)

// Ошибки админки
var (
	// ErrWrongPassword — неверный пароль
	ErrWrongPassword = errors.New("неверный пароль")
	// ErrTooManyAttempts — слишком много неудачных попыток входа
	ErrTooManyAttempts = errors.New("слишком много попыток, подождите 1 час")
)
