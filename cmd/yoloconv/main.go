// Converts YOLO datasets to unified, COCO and Pascal VOC tables, and to COCO JSON, Pascal VOC
// XML, KITTI and TFRecord label formats.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sensorable/yoloconv"
)

var (
	configFilePath string // The dataset YAML file.
	rootDirPath    string // The dataset root with images/ and labels/.
	autoOrient     bool   // Honour EXIF orientation when reading image sizes.

	tables      []string // The tables to write: unified, coco, voc.
	outDirPath  string   // The output directory for the tables.
	outEncoding string   // The table encoding: csv or json.
	sqlitePath  string   // The SQLite database to write the tables to.

	categoriesFilePath string // The COCO category list output file.
	cocoFilePath       string // The COCO instances output file.
	vocDirPath         string // The Pascal VOC XML output directory.
	kittiDirPath       string // The KITTI output directory.

	tfRecordFilePath         string // The TFRecord output file.
	tfRecordLabelMapFilePath string // The TFRecord label map output file.
	numShardFiles            int    // The number of shard files to create.

	printSummary bool // Print dataset statistics.
)

// Environment variables providing flag defaults. They may be set in a .env file.
const (
	envConfig = "YOLOCONV_CONFIG"
	envRoot   = "YOLOCONV_ROOT"
	envOut    = "YOLOCONV_OUT"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func init() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Print("Failed to load .env: ", err)
	}

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Usage of %s:\n", filepath.Base(os.Args[0]))
		_, _ = fmt.Fprintln(os.Stderr, "  tables:\t\t-config <file> -root <dir> -tables"+
			" unified,coco,voc -out <dir> [-enc csv|json] [-sqlite <file>]")
		_, _ = fmt.Fprintln(os.Stderr, "  coco output:\t\t-coco-json <file> [-categories <file>]")
		_, _ = fmt.Fprintln(os.Stderr, "  voc output:\t\t-voc-dir <dir>")
		_, _ = fmt.Fprintln(os.Stderr, "  kitti output:\t\t-kitti-dir <dir>")
		_, _ = fmt.Fprintln(os.Stderr, "  tfrecord output:\t-tfrecord <file> -tfrecord-label-map"+
			" <file> [-num-shards n]")
		_, _ = fmt.Fprintln(os.Stderr)
		_, _ = fmt.Fprintf(os.Stderr, "  Defaults for -config, -root and -out are read from %s, %s"+
			" and %s.\n\n", envConfig, envRoot, envOut)
		flag.PrintDefaults()
	}

	printUsageAndExit := func(msg ...interface{}) {
		log.Print(msg...)
		flag.Usage()
		os.Exit(1)
	}

	// Input arguments.
	flag.StringVar(&configFilePath, "config", getEnv(envConfig, ""),
		"The `path` to the dataset YAML file with the class names")
	flag.StringVar(&rootDirPath, "root", getEnv(envRoot, ""),
		"The `path` to the dataset root with the images and labels directories (defaults to the"+
			" path field of the config)")
	flag.BoolVar(&autoOrient, "auto-orient", autoOrient,
		"Decode images and apply their EXIF orientation to obtain the image size")

	// Table arguments.
	tableNames := flag.String("tables", "",
		"The comma-separated `tables` to write {unified, coco, voc}")
	flag.StringVar(&outDirPath, "out", getEnv(envOut, ""),
		"The `path` to the table output directory")
	flag.StringVar(&outEncoding, "enc", "csv", "The table `encoding` {csv, json}")
	flag.StringVar(&sqlitePath, "sqlite", sqlitePath,
		"The `path` to a SQLite database to write the tables to")

	// Label format arguments.
	flag.StringVar(&categoriesFilePath, "categories", categoriesFilePath,
		"The `path` to the COCO category list output file")
	flag.StringVar(&cocoFilePath, "coco-json", cocoFilePath,
		"The `path` to the COCO instances output file")
	flag.StringVar(&vocDirPath, "voc-dir", vocDirPath,
		"The `path` to the Pascal VOC XML output directory")
	flag.StringVar(&kittiDirPath, "kitti-dir", kittiDirPath,
		"The `path` to the KITTI label output directory")
	flag.StringVar(&tfRecordFilePath, "tfrecord", tfRecordFilePath,
		"The `path` to the TFRecord output file")
	flag.StringVar(&tfRecordLabelMapFilePath, "tfrecord-label-map", tfRecordLabelMapFilePath,
		"The TFRecord label map output file `path`")
	flag.IntVar(&numShardFiles, "num-shards", 1,
		"The number of shard files to create (tfrecord only)")

	flag.BoolVar(&printSummary, "summary", printSummary, "Print dataset statistics")

	// Parse and validate flags.
	flag.Parse()

	if configFilePath == "" {
		printUsageAndExit("Missing config path argument")
	}

	if *tableNames != "" {
		for _, t := range strings.Split(*tableNames, ",") {
			switch t = strings.TrimSpace(t); t {
			case "unified", "coco", "voc":
				tables = append(tables, t)
			default:
				printUsageAndExit("Unknown table ", strconv.Quote(t))
			}
		}
		if outDirPath == "" && sqlitePath == "" {
			printUsageAndExit("Missing table output directory or SQLite path")
		}
	}
	switch outEncoding {
	case "csv", "json":
	default:
		printUsageAndExit("Unsupported table encoding ", strconv.Quote(outEncoding))
	}

	if tfRecordFilePath != "" && tfRecordLabelMapFilePath == "" {
		printUsageAndExit("Missing TFRecord label map path argument")
	}
	if numShardFiles < 1 {
		printUsageAndExit("Invalid value for -num-shards")
	}

	if len(tables) == 0 && cocoFilePath == "" && vocDirPath == "" && kittiDirPath == "" &&
		tfRecordFilePath == "" && categoriesFilePath == "" && !printSummary {
		printUsageAndExit("Nothing to do, specify at least one output")
	}

	// Clean path arguments.
	configFilePath = filepath.Clean(configFilePath)
	if rootDirPath != "" {
		rootDirPath = filepath.Clean(rootDirPath)
	}
	if outDirPath != "" {
		outDirPath = filepath.Clean(outDirPath)
	}
}

func main() {
	dataset, err := yoloconv.OpenDataset(configFilePath, rootDirPath,
		yoloconv.WithAutoOrient(autoOrient))
	if err != nil {
		log.Fatal("Failed to load the dataset: ", err)
	}
	labels := dataset.LabelMap()
	log.Printf("Dataset %s with %d classes", dataset.Root, labels.NumLabels())

	if categoriesFilePath != "" {
		if err := yoloconv.WriteJSON(categoriesFilePath, labels.CategoriesCOCO()); err != nil {
			log.Fatal("Failed to write the categories: ", err)
		}
	}

	// Only the category list can be written without reading the dataset.
	if len(tables) == 0 && cocoFilePath == "" && vocDirPath == "" && kittiDirPath == "" &&
		tfRecordFilePath == "" && !printSummary {
		return
	}

	records, err := dataset.Records()
	if err != nil {
		log.Fatal("Failed to read the dataset: ", err)
	}
	cocoRecords := yoloconv.ToCOCO(records)
	vocRecords := yoloconv.ToPascalVOC(records)

	// Write tables.
	var outTables []yoloconv.Table
	for _, name := range tables {
		var t yoloconv.Table
		var data interface{}
		switch name {
		case "unified":
			t, data = yoloconv.UnifiedTable(records), records
		case "coco":
			t, data = yoloconv.COCOTable(cocoRecords), cocoRecords
		case "voc":
			t, data = yoloconv.VOCTable(vocRecords), vocRecords
		}
		outTables = append(outTables, t)

		if outDirPath == "" {
			continue
		}
		outPath := filepath.Join(outDirPath, t.Name+"."+outEncoding)
		if outEncoding == "json" {
			err = yoloconv.WriteJSON(outPath, data)
		} else {
			err = yoloconv.WriteCSV(outPath, t)
		}
		if err != nil {
			log.Fatal("Failed to write table: ", err)
		}
		log.Printf("Successfully wrote %d rows to %s", len(t.Rows), outPath)
	}
	if sqlitePath != "" && len(outTables) > 0 {
		if err := yoloconv.WriteSQLite(sqlitePath, outTables...); err != nil {
			log.Fatal("Failed to write the SQLite database: ", err)
		}
	}

	// Write label formats.
	if cocoFilePath != "" {
		cocoData := yoloconv.ToCOCODataset(records, labels)
		if err := yoloconv.WriteCOCO(cocoFilePath, cocoData); err != nil {
			log.Fatal("Conversion to COCO failed: ", err)
		}
		log.Print("Successfully wrote COCO annotations to ", cocoFilePath)
	}
	if vocDirPath != "" {
		annotations := yoloconv.ToVOCAnnotations(vocRecords, yoloconv.ImagesDirName)
		if err := yoloconv.WriteVOC(vocDirPath, annotations); err != nil {
			log.Fatal("Conversion to Pascal VOC failed: ", err)
		}
		log.Printf("Successfully wrote Pascal VOC annotations for %d files to %s",
			len(annotations), vocDirPath)
	}
	if kittiDirPath != "" {
		if err := yoloconv.WriteKitti(kittiDirPath, vocRecords); err != nil {
			log.Fatal("Conversion to KITTI failed: ", err)
		}
		log.Print("Successfully wrote KITTI labels to ", kittiDirPath)
	}
	if tfRecordFilePath != "" {
		err := yoloconv.WriteTFRecord(tfRecordFilePath, tfRecordLabelMapFilePath, dataset.ImageDir,
			records, labels, numShardFiles)
		if err != nil {
			log.Fatal("Conversion to TFRecord failed: ", err)
		}
	}

	if printSummary {
		if err := yoloconv.Summarize(records, labels).Print(os.Stdout); err != nil {
			log.Fatal(err)
		}
	}

	log.Print("Total number of boxes: ", len(records))
}
