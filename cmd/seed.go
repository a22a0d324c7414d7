package cmd

import (
	"context"
	"log"

	"hotstock/internal/model"
	"hotstock/internal/repository"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the initial users, stocks and tags when the tables are empty",
	Run:   Seed,
}

func Seed(cmd *cobra.Command, args []string) {
	ctx := context.Background()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer appDep.Close()

	repo, err := repository.NewRepository(appDep.cfg, appDep.db.DB, appDep.log)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	userCount, err := repo.UserRepo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count users: %v", err)
	}
	if userCount == 0 {
		admin := &model.User{
			Username:   "Admin",
			Mobile:     "13800138000",
			Reputation: 1000,
			IsPro:      true,
		}
		if err := repo.UserRepo.Create(ctx, admin); err != nil {
			log.Fatalf("Failed to seed admin user: %v", err)
		}
		appDep.log.Info("Seeded admin user")
	}

	stockCount, err := repo.StockRepo.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count stocks: %v", err)
	}
	if stockCount > 0 {
		appDep.log.Info("Stocks already seeded, nothing to do")
		return
	}

	stocks := []model.Stock{
		{Symbol: "700.HK", Name: "腾讯控股", Price: 380.5, ChangePercent: 1.2, Volume: 5000000, HeatScore: 85, Market: "HK", Industry: "互联网"},
		{Symbol: "9988.HK", Name: "阿里巴巴", Price: 75.2, ChangePercent: -0.5, Volume: 8000000, HeatScore: 70, Market: "HK", Industry: "互联网"},
		{Symbol: "3690.HK", Name: "美团", Price: 120.4, ChangePercent: 2.1, Volume: 4000000, HeatScore: 92, Market: "HK", Industry: "互联网"},
		{Symbol: "600519.SH", Name: "贵州茅台", Price: 1650.0, ChangePercent: 0.8, Volume: 100000, HeatScore: 88, Market: "A", Industry: "消费"},
		{Symbol: "000651.SZ", Name: "格力电器", Price: 35.2, ChangePercent: 0.3, Volume: 2000000, HeatScore: 65, Market: "A", Industry: "家电"},
		{Symbol: "601318.SH", Name: "中国平安", Price: 45.8, ChangePercent: -1.2, Volume: 3000000, HeatScore: 75, Market: "A", Industry: "金融"},
		{Symbol: "002594.SZ", Name: "比亚迪", Price: 220.5, ChangePercent: 3.5, Volume: 1500000, HeatScore: 95, Market: "A", Industry: "汽车"},
		{Symbol: "600036.SH", Name: "招商银行", Price: 32.4, ChangePercent: 0.5, Volume: 4000000, HeatScore: 80, Market: "A", Industry: "金融"},
		{Symbol: "000001.SZ", Name: "平安银行", Price: 10.2, ChangePercent: 0.1, Volume: 5000000, HeatScore: 60, Market: "A", Industry: "金融"},
	}
	if err := repo.StockRepo.CreateBatch(ctx, stocks); err != nil {
		log.Fatalf("Failed to seed stocks: %v", err)
	}

	tags := []model.Tag{
		{StockSymbol: "700.HK", Content: "回购", Likes: 10},
		{StockSymbol: "700.HK", Content: "游戏增长", Likes: 8},
		{StockSymbol: "002594.SZ", Content: "电车销冠", Likes: 15},
		{StockSymbol: "002594.SZ", Content: "出海加速", Likes: 12},
	}
	if err := repo.TagRepo.CreateBatch(ctx, tags); err != nil {
		log.Fatalf("Failed to seed tags: %v", err)
	}

	appDep.log.Info("Seeded stocks and tags")
}
