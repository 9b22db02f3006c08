package handler

import (
	"verslohub/internal/usecase"
)

var (
	userHandler         *UserHandler
	vendorHandler       *VendorHandler
	favoriteHandler     *FavoriteHandler
	claimHandler        *ClaimHandler
	requestHandler      *RequestHandler
	notificationHandler *NotificationHandler
)

func Setup(
	userUseCase *usecase.UserUseCase,
	vendorUseCase *usecase.VendorUseCase,
	favoriteUseCase *usecase.FavoriteUseCase,
	claimUseCase *usecase.ClaimUseCase,
	requestUseCase *usecase.RequestUseCase,
	chatUseCase *usecase.ChatUseCase,
	notificationUseCase *usecase.NotificationUseCase,
) {
	userHandler = NewUserHandler(userUseCase)
	vendorHandler = NewVendorHandler(vendorUseCase)
	favoriteHandler = NewFavoriteHandler(favoriteUseCase)
	claimHandler = NewClaimHandler(claimUseCase)
	requestHandler = NewRequestHandler(requestUseCase, chatUseCase)
	notificationHandler = NewNotificationHandler(notificationUseCase)
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetVendorHandler() *VendorHandler {
	return vendorHandler
}

func GetFavoriteHandler() *FavoriteHandler {
	return favoriteHandler
}

func GetClaimHandler() *ClaimHandler {
	return claimHandler
}

func GetRequestHandler() *RequestHandler {
	return requestHandler
}

func GetNotificationHandler() *NotificationHandler {
	return notificationHandler
}
