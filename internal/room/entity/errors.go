package entity

import "Conquest/modules/kit/errx"

const (
	CodeRoomNotFound          errx.Code = "ROOM_NOT_FOUND"
	CodeRoomFull              errx.Code = "ROOM_FULL"
	CodeRoomAlreadyStarted    errx.Code = "ROOM_ALREADY_STARTED"
	CodePlayerNotFound        errx.Code = "ROOM_PLAYER_NOT_FOUND"
	CodeInsufficientResources errx.Code = "ROOM_INSUFFICIENT_RESOURCES"
	CodeInsufficientUnits     errx.Code = "ROOM_INSUFFICIENT_UNITS"
	CodeDuplicatePlayer       errx.Code = "ROOM_DUPLICATE_PLAYER"
)

var (
	ErrRoomNotFound          = errx.NewBiz(CodeRoomNotFound, "Room not found")
	ErrRoomFull              = errx.NewBiz(CodeRoomFull, "Room is full")
	ErrRoomAlreadyStarted    = errx.NewBiz(CodeRoomAlreadyStarted, "Game already started")
	ErrPlayerNotFound        = errx.NewBiz(CodePlayerNotFound, "Player not found")
	ErrInsufficientResources = errx.NewBiz(CodeInsufficientResources, "Not enough resources")
	ErrInsufficientUnits     = errx.NewBiz(CodeInsufficientUnits, "Not enough units")
	ErrDuplicatePlayer       = errx.NewBiz(CodeDuplicatePlayer, "Player already in room")
)
