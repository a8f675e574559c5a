package service

import "Conquest/modules/kit/errx"

const (
	CodeUnknownAction     errx.Code = "ROOM_UNKNOWN_ACTION"
	CodeUnknownBuilding   errx.Code = "ROOM_UNKNOWN_BUILDING"
	CodeUnknownUnit       errx.Code = "ROOM_UNKNOWN_UNIT"
	CodeUnknownTech       errx.Code = "ROOM_UNKNOWN_TECH"
	CodeTechResearched    errx.Code = "ROOM_TECH_ALREADY_RESEARCHED"
	CodeInvalidQuantity   errx.Code = "ROOM_INVALID_QUANTITY"
	CodeTargetNotFound    errx.Code = "ROOM_TARGET_NOT_FOUND"
	CodeSelfTarget        errx.Code = "ROOM_SELF_TARGET"
	CodeInvalidTrade      errx.Code = "ROOM_INVALID_TRADE"
	CodeTradeOfferShort   errx.Code = "ROOM_TRADE_OFFER_UNAFFORDABLE"
	CodeTradeRequestShort errx.Code = "ROOM_TRADE_REQUEST_UNAFFORDABLE"
	CodeNotYourTurn       errx.Code = "ROOM_NOT_YOUR_TURN"
	CodeGameNotPlaying    errx.Code = "ROOM_GAME_NOT_PLAYING"
	CodeGameNotWaiting    errx.Code = "ROOM_GAME_NOT_WAITING"
)

var (
	ErrUnknownAction     = errx.NewBiz(CodeUnknownAction, "Unknown action type")
	ErrUnknownBuilding   = errx.NewBiz(CodeUnknownBuilding, "Unknown building type")
	ErrUnknownUnit       = errx.NewBiz(CodeUnknownUnit, "Unknown unit type")
	ErrUnknownTech       = errx.NewBiz(CodeUnknownTech, "Unknown technology")
	ErrTechResearched    = errx.NewBiz(CodeTechResearched, "Technology already researched")
	ErrInvalidQuantity   = errx.NewBiz(CodeInvalidQuantity, "Invalid quantity")
	ErrTargetNotFound    = errx.NewBiz(CodeTargetNotFound, "Player not found")
	ErrSelfTarget        = errx.NewBiz(CodeSelfTarget, "Cannot target yourself")
	ErrInvalidTrade      = errx.NewBiz(CodeInvalidTrade, "Invalid trade")
	ErrTradeOfferShort   = errx.NewBiz(CodeTradeOfferShort, "Not enough resources to trade")
	ErrTradeRequestShort = errx.NewBiz(CodeTradeRequestShort, "Opponent does not have enough resources")
	ErrNotYourTurn       = errx.NewBiz(CodeNotYourTurn, "Not your turn")
	ErrGameNotPlaying    = errx.NewBiz(CodeGameNotPlaying, "Game is not in progress")
	ErrGameNotWaiting    = errx.NewBiz(CodeGameNotWaiting, "Game already started")
)
