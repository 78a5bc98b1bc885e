package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/users/user/dto"
	"schoolku_backend/internals/features/users/user/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/query"
)

const (
	DefaultLimit = 20

	userOrder = "created_at DESC, id DESC"

	msgUserNotFound  = "User not found"
	msgUserDuplicate = "Username or email already exists"
)

var userFilters = query.FilterSet{
	Exact: []query.Exact{
		{Param: "active", Column: "active", Kind: query.Bool},
	},
	Search: []string{"username", "email", "first_name", "last_name"},
}

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// GET /api/users
func (uc *UserController) List(c *fiber.Ctx) error {
	p := helper.ParsePage(c, DefaultLimit)

	users, total, err := query.FindPage[model.UserModel](uc.DB.WithContext(c.UserContext()), query.ListQuery{
		Where:  userFilters.Build(c.Queries()),
		Select: model.PublicColumns,
		Order:  userOrder,
		Offset: p.Offset(),
		Limit:  p.Limit,
	})
	if err != nil {
		return helper.Internal(err, "list users")
	}
	return helper.JsonList(c, users, helper.BuildPagination(total, p))
}

// GET /api/users/:id
func (uc *UserController) GetByID(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	user, err := uc.load(uc.DB.WithContext(c.UserContext()), id)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, user)
}

// POST /api/users
func (uc *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := helper.Bind(c, &req); err != nil {
		return err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}
	db := uc.DB.WithContext(c.UserContext())

	taken, err := helper.Exists(db, &model.UserModel{}, "username = ? OR email = ?", req.Username, req.Email)
	if err != nil {
		return helper.Internal(err, "check user uniqueness")
	}
	if taken {
		return helper.Conflict(msgUserDuplicate)
	}

	user, err := req.ToModel()
	if err != nil {
		return helper.Internal(err, "hash password")
	}
	if err := db.Create(&user).Error; err != nil {
		return helper.MapDBError(err, msgUserNotFound, msgUserDuplicate)
	}
	log.Printf("[INFO] user created id=%d username=%s", user.ID, user.Username)

	out, err := uc.load(db, user.ID)
	if err != nil {
		return err
	}
	return helper.JsonCreated(c, "user", out, "User created successfully")
}

// PUT /api/users/:id
func (uc *UserController) Update(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := helper.BindStrict(c, &req); err != nil {
		return err
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return err
	}
	db := uc.DB.WithContext(c.UserContext())

	var user model.UserModel
	if err := db.Where("id = ?", id).Take(&user).Error; err != nil {
		return helper.MapDBError(err, msgUserNotFound, "")
	}

	cols := req.Apply(&user)
	if len(cols) == 0 {
		return helper.Validation("No valid fields to update")
	}

	if req.Email != nil {
		if err := uc.ensureFree(db, "email", *req.Email, id, "Email already exists for another user"); err != nil {
			return err
		}
	}
	if req.Username != nil {
		if err := uc.ensureFree(db, "username", *req.Username, id, "Username already exists for another user"); err != nil {
			return err
		}
	}

	if err := db.Model(&model.UserModel{}).Where("id = ?", id).Updates(cols).Error; err != nil {
		return helper.MapDBError(err, msgUserNotFound, msgUserDuplicate)
	}

	out, err := uc.load(db, id)
	if err != nil {
		return err
	}
	return helper.JsonUpdated(c, "user", out, "User updated successfully")
}

// DELETE /api/users/:id (soft delete)
func (uc *UserController) Delete(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	if me, ok := helper.GetPrincipal(c); ok && me.UserID == id {
		return helper.Validation("You cannot delete your own account")
	}
	if err := uc.setActive(c, id, false); err != nil {
		return err
	}
	log.Printf("[INFO] user deactivated id=%d", id)
	return helper.JsonMessage(c, "User deactivated successfully")
}

// PUT /api/users/:id/activate
func (uc *UserController) Activate(c *fiber.Ctx) error {
	id, err := helper.ParseID(c, "id")
	if err != nil {
		return err
	}
	if err := uc.setActive(c, id, true); err != nil {
		return err
	}
	log.Printf("[INFO] user activated id=%d", id)
	return helper.JsonMessage(c, "User activated successfully")
}

// GET /api/users/stats/overview
func (uc *UserController) Stats(c *fiber.Ctx) error {
	db := uc.DB.WithContext(c.UserContext())
	var out dto.UserStats

	if err := db.Model(&model.UserModel{}).Count(&out.Total).Error; err != nil {
		return helper.Internal(err, "count users")
	}
	if err := db.Model(&model.UserModel{}).Where("active = ?", true).Count(&out.Active).Error; err != nil {
		return helper.Internal(err, "count active users")
	}
	out.Inactive = out.Total - out.Active

	since := helper.RecentWindow(time.Now().UTC())
	if err := db.Model(&model.UserModel{}).Where("created_at >= ?", since).Count(&out.RecentRegistrations).Error; err != nil {
		return helper.Internal(err, "count recent users")
	}
	return helper.JsonOK(c, out)
}

/* ===== helpers ===== */

func (uc *UserController) load(db *gorm.DB, id int64) (model.UserModel, error) {
	var user model.UserModel
	if err := db.Select(model.PublicColumns).Where("id = ?", id).Take(&user).Error; err != nil {
		return user, helper.MapDBError(err, msgUserNotFound, "")
	}
	return user, nil
}

func (uc *UserController) ensureFree(db *gorm.DB, column, value string, exceptID int64, msg string) error {
	taken, err := helper.Exists(db, &model.UserModel{}, column+" = ? AND id <> ?", value, exceptID)
	if err != nil {
		return helper.Internal(err, "check "+column)
	}
	if taken {
		return helper.Conflict(msg)
	}
	return nil
}

func (uc *UserController) setActive(c *fiber.Ctx, id int64, active bool) error {
	db := uc.DB.WithContext(c.UserContext())
	if err := helper.MustExist(db, &model.UserModel{}, msgUserNotFound, "id = ?", id); err != nil {
		return err
	}
	if err := db.Model(&model.UserModel{}).Where("id = ?", id).Update("active", active).Error; err != nil {
		return helper.Internal(err, "update user active flag")
	}
	return nil
}
