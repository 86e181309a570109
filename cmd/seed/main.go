package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/campusone-dev/digital-campus/backend/internal/config"
	"github.com/campusone-dev/digital-campus/backend/internal/repository"
	"github.com/campusone-dev/digital-campus/backend/internal/seed"
	"github.com/campusone-dev/digital-campus/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机用户, 2: 插入随机课程, 3: 插入随机公告, 4: 插入随机申请, 5: 导入真实报名数据)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		if n <= 0 {
			slog.Error("请输入合法的用户数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				user, err := utils.GenerateRandomUser(cfg.Seed.User.Password, cfg.Email.UserDomain)
				if err != nil {
					slog.Error("无法生成随机用户", slog.String("error", err.Error()))
					continue
				}

				if err := repo.CreateUser(user); err != nil {
					slog.Error("无法插入用户", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入用户成功", slog.Int("count", n-cnt))
		}
	case 2:
		if n <= 0 {
			slog.Error("请输入合法的课程数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				course := utils.GenerateRandomCourse()
				if err := repo.CreateCourse(course); err != nil {
					slog.Error("无法插入课程", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入课程成功", slog.Int("count", n-cnt))
		}
	case 3:
		if n <= 0 {
			slog.Error("请输入合法的公告数量")
		} else {
			cnt := n
			for i := 0; i < n; i++ {
				announcement := utils.GenerateRandomAnnouncement()
				if err := repo.CreateAnnouncement(announcement); err != nil {
					slog.Error("无法插入公告", slog.String("error", err.Error()))
					continue
				}

				cnt--
			}

			slog.Info("插入公告成功", slog.Int("count", n-cnt))
		}
	case 4:
		if n <= 0 {
			slog.Error("请输入合法的申请数量")
			return
		}

		// 先获取所有课程，申请必须挂在已有课程上
		courses, err := repo.GetAllCourses()
		if err != nil {
			slog.Error("无法获取课程列表", slog.String("error", err.Error()))
			return
		}
		if len(courses) == 0 {
			slog.Error("数据库中没有课程，请先插入课程")
			return
		}

		cnt := n
		for i := 0; i < n; i++ {
			course := courses[rand.Intn(len(courses))]

			application := utils.GenerateRandomApplication(course.ID)
			if err := repo.CreateApplication(application); err != nil {
				slog.Error("无法插入申请", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入申请成功", slog.Int("count", n-cnt))
	case 5:
		seed.SeedApplicants(repo)
	default:
		slog.Error("指定的操作非法")
	}
}
