package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"verslohub/internal/usecase"
	"verslohub/pkg/errors"
	"verslohub/pkg/response"
)

type VendorHandler struct {
	vendorUseCase *usecase.VendorUseCase
}

func NewVendorHandler(vendorUseCase *usecase.VendorUseCase) *VendorHandler {
	return &VendorHandler{
		vendorUseCase: vendorUseCase,
	}
}

func (h *VendorHandler) CreateVendor(c echo.Context) error {
	var req usecase.CreateVendorInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)

	vendor, err := h.vendorUseCase.Create(c.Request().Context(), userID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, vendor)
}

func (h *VendorHandler) ListVendors(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	if limit <= 0 {
		limit = 20
	}

	vendors, total, err := h.vendorUseCase.List(
		c.Request().Context(),
		c.QueryParam("city"),
		c.QueryParam("service"),
		limit,
		offset,
	)
	if err != nil {
		return response.Error(c, err)
	}

	page := offset/limit + 1
	return response.Paginated(c, vendors, total, page, limit)
}

func (h *VendorHandler) GetVendor(c echo.Context) error {
	vendorID := c.Param("id")
	if vendorID == "" {
		return response.Error(c, errors.BadRequest("Vendor ID is required", nil))
	}

	vendor, err := h.vendorUseCase.GetByID(c.Request().Context(), vendorID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vendor)
}

func (h *VendorHandler) ListMyVendors(c echo.Context) error {
	userID := c.Get("uid").(string)

	vendors, err := h.vendorUseCase.ListOwn(c.Request().Context(), userID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vendors)
}

func (h *VendorHandler) UpdateVendor(c echo.Context) error {
	var req usecase.UpdateVendorInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	userID := c.Get("uid").(string)
	vendorID := c.Param("id")

	vendor, err := h.vendorUseCase.Update(c.Request().Context(), userID, vendorID, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, vendor)
}

func (h *VendorHandler) UploadLogo(c echo.Context) error {
	userID := c.Get("uid").(string)
	vendorID := c.Param("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("File is required", err))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to open uploaded file", err))
	}
	defer src.Close()

	fileType := fileHeader.Header.Get("Content-Type")

	url, err := h.vendorUseCase.UploadLogo(c.Request().Context(), userID, vendorID, src, fileType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"url": url})
}

func (h *VendorHandler) UploadPhoto(c echo.Context) error {
	userID := c.Get("uid").(string)
	vendorID := c.Param("id")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("File is required", err))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to open uploaded file", err))
	}
	defer src.Close()

	fileType := fileHeader.Header.Get("Content-Type")

	url, err := h.vendorUseCase.UploadPhoto(c.Request().Context(), userID, vendorID, src, fileType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"url": url})
}
