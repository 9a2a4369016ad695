package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/ivlev/scrollfx/internal/config"
	"github.com/ivlev/scrollfx/internal/director"
	"github.com/ivlev/scrollfx/internal/engine"
	"github.com/ivlev/scrollfx/internal/source"
	"github.com/ivlev/scrollfx/internal/system"
	"github.com/ivlev/scrollfx/internal/video"
)

var buildVersion = "dev"

const usage = `scrollfx <command> [flags]

Команды:
  preview   прогнать сценарий прокрутки и записать видео
  sample    вывести параметры эффектов по шагам прогресса (YAML)
  fixtures  сгенерировать тестовые кадры с QR-номером
  scene     записать сцену по умолчанию
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(2)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "preview":
		err = runPreview(args)
	case "sample":
		err = runSample(args)
	case "fixtures":
		err = runFixtures(args)
	case "scene":
		err = runScene(args)
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Print(usage)
		log.Fatalf("[-] Неизвестная команда: %s", cmd)
	}
	if err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}
}

func loadScene(path string) (*config.Scene, error) {
	if path == "" {
		return config.DefaultScene(), nil
	}
	return config.LoadScene(path)
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	inputPtr := fs.String("input", "", "Папка с кадрами, PDF или \"fixtures\" (по умолчанию: frames.dir сцены или самый свежий PDF в input/pdf/)")
	scenePtr := fs.String("scene", "", "YAML сцены (по умолчанию: встроенная сцена)")
	scenarioPtr := fs.String("scenario", "", "YAML сценария прокрутки (если пусто, генерируется в scenarios/)")
	outputPtr := fs.String("output", "", "Путь к видео (если пусто, генерируется автоматически в output/)")
	widthPtr := fs.Int("width", 1280, "Ширина")
	heightPtr := fs.Int("height", 720, "Высота")
	fpsPtr := fs.Int("fps", 30, "FPS")
	workersPtr := fs.Int("workers", runtime.NumCPU(), "Потоки предзагрузки")
	durationPtr := fs.Float64("duration", 12, "Длительность сценария (сек), если он генерируется")
	qualityPtr := fs.Int("quality", 0, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	statsPtr := fs.Bool("stats", true, "Печатать отчет и дописывать benchmark.log")
	barPtr := fs.Bool("progress-bar", false, "Полоса прогресса прокрутки внизу кадра")
	verbosePtr := fs.Bool("verbose", false, "Печатать каждое событие прогресса")
	fs.Parse(args)

	system.InitResourceLimits()
	for _, d := range []string{"input/pdf", "output", "scenarios"} {
		os.MkdirAll(d, 0755)
	}

	scene, err := loadScene(*scenePtr)
	if err != nil {
		return err
	}

	inputPath := *inputPtr
	if inputPath == "" && scene.Frames.Dir == "" {
		latest, err := system.FindLatestPDF("input/pdf")
		if err != nil {
			log.Printf("[!] %v, используются тестовые кадры", err)
			inputPath = "fixtures"
		} else {
			inputPath = latest
			fmt.Printf("[*] Выбран файл: %s\n", inputPath)
		}
	}

	var src source.Source
	switch {
	case inputPath == "fixtures":
		src, err = source.NewFixtureSource(scene.Frames.Count, *widthPtr, *heightPtr)
	case inputPath == "":
		inputPath = scene.Frames.Dir
		src = &source.TemplateSource{Dir: scene.Frames.Dir, Count: scene.Frames.Count}
	default:
		src, err = source.Open(inputPath)
	}
	if err != nil {
		return fmt.Errorf("инициализация источника: %w", err)
	}
	defer src.Close()

	var scenario *director.Scenario
	if *scenarioPtr != "" {
		scenario, err = director.ReadScenario(*scenarioPtr)
		if err != nil {
			return err
		}
		fmt.Printf("[*] Сценарий: %s\n", *scenarioPtr)
	} else {
		d := director.NewDirector(*widthPtr, *heightPtr)
		scenario, err = d.GenerateScenario(director.StopsFor(scene), inputPath, *durationPtr)
		if err != nil {
			return err
		}
		path := director.ScenarioPath("scenarios", time.Now())
		if err := director.WriteScenario(scenario, path); err != nil {
			log.Printf("[!] Не удалось сохранить сценарий: %v", err)
		} else {
			fmt.Printf("[*] Сценарий сохранен: %s\n", path)
		}
	}

	finalOutput := *outputPtr
	if finalOutput == "" {
		base := filepath.Base(inputPath)
		clean := strings.ReplaceAll(strings.TrimSuffix(base, filepath.Ext(base)), " ", "_")
		timestamp := time.Now().Format("2006-01-02_15-04-05")
		finalOutput = filepath.Join("output", fmt.Sprintf("%s_%s.mp4", clean, timestamp))
	}

	encoderName := system.GetBestH264Encoder()
	if encoderName != "libx264" {
		fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", encoderName)
	}
	quality := *qualityPtr
	if quality == 0 {
		quality = system.DefaultQuality(encoderName)
	}

	cfg := &config.Config{
		InputPath:    inputPath,
		OutputVideo:  finalOutput,
		ScenePath:    *scenePtr,
		ScenarioPath: *scenarioPtr,
		Width:        *widthPtr,
		Height:       *heightPtr,
		FPS:          *fpsPtr,
		Workers:      *workersPtr,
		VideoEncoder: encoderName,
		Quality:      quality,
		ShowStats:    *statsPtr,
		ProgressBar:  *barPtr,
		Verbose:      *verbosePtr,
		BuildVersion: buildVersion,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	project := engine.NewPreviewProject(cfg, scene, scenario, src, &video.FFmpegEncoder{})
	if _, err := project.Run(ctx); err != nil {
		return fmt.Errorf("ошибка проекта: %w", err)
	}

	fmt.Printf("[+++] Успех! Результат: %s\n", cfg.OutputVideo)
	return nil
}

func runSample(args []string) error {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	scenePtr := fs.String("scene", "", "YAML сцены (по умолчанию: встроенная сцена)")
	stepsPtr := fs.Int("steps", 20, "Число шагов прогресса")
	widthPtr := fs.Int("width", 1280, "Ширина вьюпорта")
	heightPtr := fs.Int("height", 720, "Высота вьюпорта")
	outputPtr := fs.String("output", "", "Файл результата (по умолчанию: stdout)")
	fs.Parse(args)

	scene, err := loadScene(*scenePtr)
	if err != nil {
		return err
	}
	sampler, err := engine.NewSampler(scene, float64(*widthPtr), float64(*heightPtr))
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if *outputPtr != "" {
		f, err := os.Create(*outputPtr)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	return sampler.WriteSamples(w, *stepsPtr)
}

func runFixtures(args []string) error {
	fs := flag.NewFlagSet("fixtures", flag.ExitOnError)
	dirPtr := fs.String("dir", "input/fixtures", "Папка для кадров")
	countPtr := fs.Int("count", 125, "Число кадров")
	widthPtr := fs.Int("width", 1280, "Ширина")
	heightPtr := fs.Int("height", 720, "Высота")
	fs.Parse(args)

	start := time.Now()
	paths, err := source.WriteFixtures(*dirPtr, *countPtr, *widthPtr, *heightPtr)
	if err != nil {
		return err
	}
	fmt.Printf("[+] Записано %d кадров в %s за %.2fs\n", len(paths), *dirPtr, time.Since(start).Seconds())
	return nil
}

func runScene(args []string) error {
	fs := flag.NewFlagSet("scene", flag.ExitOnError)
	outputPtr := fs.String("output", "scene.yaml", "Файл сцены")
	fs.Parse(args)

	if err := config.WriteScene(config.DefaultScene(), *outputPtr); err != nil {
		return err
	}
	fmt.Printf("[+] Сцена записана: %s\n", *outputPtr)
	return nil
}
