package main

const htmlContent = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Doxa</title>
    <style>
        body { margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif; background: #0f0f0f; color: #eee; height: 100vh; display: flex; flex-direction: column; overflow: hidden; }

        .content { flex: 1; position: relative; display: flex; }

        .boot {
            display: flex;
            flex-direction: column;
            align-items: center;
            justify-content: center;
            width: 100%;
            height: 100%;
        }
        .boot h1 { font-weight: 300; letter-spacing: 4px; margin-bottom: 24px; }

        .terminal {
            background: #060606;
            color: #ccc;
            font-family: 'Consolas', 'Monaco', 'Courier New', monospace;
            font-size: 12px;
            padding: 12px;
            overflow-y: auto;
            white-space: pre-wrap;
            word-wrap: break-word;
            width: 80%;
            max-width: 640px;
            height: 200px;
            border: 1px solid #333;
            border-radius: 6px;
            box-sizing: border-box;
        }

        iframe { width: 100%; height: 100%; border: none; background: #0f0f0f; display: none; }
    </style>
</head>
<body>
    <div class="content">
        <div class="boot" id="boot">
            <h1>DOXA</h1>
            <div class="terminal" id="terminal"></div>
        </div>
        <iframe id="app"></iframe>
    </div>
    <script>
        window.addLogLine = function(line) {
            const term = document.getElementById('terminal');
            term.textContent += line + '\n';
            term.scrollTop = term.scrollHeight;
        };
        window.enableApp = function(url) {
            document.getElementById('boot').style.display = 'none';
            const app = document.getElementById('app');
            app.src = url;
            app.style.display = 'block';
        };
    </script>
</body>
</html>
`
