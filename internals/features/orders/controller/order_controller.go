package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kreditku_backend/internals/constants"
	"kreditku_backend/internals/features/orders/dto"
	"kreditku_backend/internals/features/orders/repository"
	"kreditku_backend/internals/features/orders/service"
	"kreditku_backend/internals/features/orders/workflow"
	helper "kreditku_backend/internals/helpers"
	"kreditku_backend/internals/helpers/dbtime"
)

type OrderController struct {
	Svc *service.Service
}

func NewOrderController(svc *service.Service) *OrderController {
	return &OrderController{Svc: svc}
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "ID order tidak valid")
	}
	return id, nil
}

func optUUID(c *fiber.Ctx, key string) (*uuid.UUID, error) {
	s := strings.TrimSpace(c.Query(key))
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, key+" tidak valid")
	}
	return &id, nil
}

// parseFilter: ?status=Baru,Claim&q=&sales_id=&cmo_id=&claimed_by=&dealer_id=&brand=&from=&to=
func parseFilter(c *fiber.Ctx) (repository.ListFilter, error) {
	var f repository.ListFilter

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			st, err := workflow.ParseStatus(part)
			if err != nil {
				return f, fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			f.Statuses = append(f.Statuses, st)
		}
	}
	f.Search = c.Query("q")
	f.Brand = c.Query("brand")

	var err error
	if f.SalesID, err = optUUID(c, "sales_id"); err != nil {
		return f, err
	}
	if f.CMOID, err = optUUID(c, "cmo_id"); err != nil {
		return f, err
	}
	if f.ClaimedBy, err = optUUID(c, "claimed_by"); err != nil {
		return f, err
	}
	if f.DealerID, err = optUUID(c, "dealer_id"); err != nil {
		return f, err
	}
	// mine=1 untuk CMO: order yang dia claim
	if c.QueryBool("mine") {
		uid, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return f, err
		}
		f.ClaimedBy = &uid
	}

	if s := strings.TrimSpace(c.Query("from")); s != "" {
		d, err := dbtime.ParseDate(s)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "from harus YYYY-MM-DD")
		}
		from := d.UTC()
		f.From = &from
	}
	if s := strings.TrimSpace(c.Query("to")); s != "" {
		d, err := dbtime.ParseDate(s)
		if err != nil {
			return f, fiber.NewError(fiber.StatusBadRequest, "to harus YYYY-MM-DD")
		}
		to := d.Add(24 * time.Hour).UTC() // inklusif
		f.To = &to
	}
	return f, nil
}

// POST /api/orders
func (ctl *OrderController) Create(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return helper.FromDomainError(c, err)
	}

	o, err := ctl.Svc.Create(c.UserContext(), actor, req)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonCreated(c, "Order berhasil dibuat", o)
}

// GET /api/orders
func (ctl *OrderController) List(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	f, err := parseFilter(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	rows, total, err := ctl.Svc.List(c.UserContext(), actor, f, p)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonList(c, "Daftar order", rows, helper.BuildMeta(total, p))
}

// GET /api/orders/stats
func (ctl *OrderController) Stats(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	f, err := parseFilter(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	out, err := ctl.Svc.Stats(c.UserContext(), actor, f)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "Statistik order", out)
}

// GET /api/orders/:id
func (ctl *OrderController) Get(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	d, err := ctl.Svc.Get(c.UserContext(), actor, id)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "Detail order", d)
}

// PATCH /api/orders/:id
func (ctl *OrderController) Patch(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	var req dto.PatchOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.FromDomainError(c, err)
	}

	o, err := ctl.Svc.Patch(c.UserContext(), actor, id, req)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Order diperbarui", o)
}

// POST /api/orders/:id/transitions
func (ctl *OrderController) Transition(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	var req dto.TransitionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.FromDomainError(c, err)
	}

	res, err := ctl.Svc.Transition(c.UserContext(), actor, id, req)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "Status order diperbarui", res)
}

// POST /api/orders/:id/notes
func (ctl *OrderController) AddNote(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	var req dto.NoteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}

	res, err := ctl.Svc.AddNote(c.UserContext(), actor, id, req)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonCreated(c, "Catatan ditambahkan", res)
}

// POST /api/orders/:id/photos (multipart: kind, file)
func (ctl *OrderController) UploadPhoto(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	kind := service.PhotoKind(strings.ToLower(strings.TrimSpace(c.FormValue("kind"))))
	if !kind.Valid() {
		return helper.JsonError(c, fiber.StatusBadRequest, "kind harus ktp, ktp_pasangan, atau survey")
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File foto wajib diunggah")
	}
	if constants.DetectFileTypeFromExt(fh.Filename) != constants.FileTypeImage {
		return helper.JsonError(c, fiber.StatusUnsupportedMediaType, "Foto harus png, jpg, atau webp")
	}
	data, err := helper.ConvertUploadToWebP(fh, helper.DefaultPhotoOptions)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	o, err := ctl.Svc.UploadPhoto(c.UserContext(), actor, id, kind, data)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "Foto tersimpan", o)
}

// DELETE /api/orders/:id
func (ctl *OrderController) Delete(c *fiber.Ctx) error {
	actor, err := helper.GetActor(c)
	if err != nil {
		return err
	}
	id, err := parseID(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	if err := ctl.Svc.Delete(c.UserContext(), actor, id); err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Order dihapus", fiber.Map{"order_id": id})
}
